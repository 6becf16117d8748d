package client

import (
	"context"
	"net/url"

	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// VariablesClient implements figma.VariablesClient. The variables
// endpoints require an Enterprise plan; on other plans the service answers
// 403, which surfaces as an auth error.
type VariablesClient struct {
	httpClient *http.Client
}

// NewVariablesClient creates a design variables accessor.
func NewVariablesClient(httpClient *http.Client) *VariablesClient {
	return &VariablesClient{httpClient: httpClient}
}

// GetLocal retrieves the variables defined in a file, including
// unpublished ones.
func (c *VariablesClient) GetLocal(ctx context.Context, fileKey string) (*figma.VariablesResponse, error) {
	return c.get(ctx, fileKey, "local")
}

// GetPublished retrieves only the variables published from a file.
func (c *VariablesClient) GetPublished(ctx context.Context, fileKey string) (*figma.VariablesResponse, error) {
	return c.get(ctx, fileKey, "published")
}

func (c *VariablesClient) get(ctx context.Context, fileKey, scope string) (*figma.VariablesResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/variables/"+scope, nil)
	if err != nil {
		return nil, err
	}

	var variables figma.VariablesResponse
	if err := unmarshalMeta(resp.Body, &variables); err != nil {
		return nil, err
	}

	return &variables, nil
}
