package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// DevResourcesClient implements figma.DevResourcesClient.
type DevResourcesClient struct {
	httpClient *http.Client
}

// NewDevResourcesClient creates a dev resources accessor.
func NewDevResourcesClient(httpClient *http.Client) *DevResourcesClient {
	return &DevResourcesClient{httpClient: httpClient}
}

// List retrieves the dev resources attached to a file.
func (c *DevResourcesClient) List(ctx context.Context, fileKey string) (*figma.DevResourcesResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/dev_resources", nil)
	if err != nil {
		return nil, err
	}

	var resources figma.DevResourcesResponse
	if err := json.Unmarshal(resp.Body, &resources); err != nil {
		return nil, fmt.Errorf("parsing dev resources response: %w", err)
	}

	return &resources, nil
}
