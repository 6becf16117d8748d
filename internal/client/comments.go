package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// CommentsClient implements figma.CommentsClient.
type CommentsClient struct {
	httpClient *http.Client
}

// NewCommentsClient creates a comments accessor.
func NewCommentsClient(httpClient *http.Client) *CommentsClient {
	return &CommentsClient{httpClient: httpClient}
}

// List retrieves the comments on a file.
func (c *CommentsClient) List(ctx context.Context, fileKey string) (*figma.CommentsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/comments", nil)
	if err != nil {
		return nil, err
	}

	var comments figma.CommentsResponse
	if err := json.Unmarshal(resp.Body, &comments); err != nil {
		return nil, fmt.Errorf("parsing comments response: %w", err)
	}

	return &comments, nil
}
