package client

import (
	"context"
	"net/url"

	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// StylesClient implements figma.StylesClient.
type StylesClient struct {
	httpClient *http.Client
}

// NewStylesClient creates a published styles accessor.
func NewStylesClient(httpClient *http.Client) *StylesClient {
	return &StylesClient{httpClient: httpClient}
}

// ListForFile lists styles published from a file.
func (c *StylesClient) ListForFile(ctx context.Context, fileKey string) (*figma.StylesResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/styles", nil)
	if err != nil {
		return nil, err
	}

	var styles figma.StylesResponse
	if err := unmarshalMeta(resp.Body, &styles); err != nil {
		return nil, err
	}

	return &styles, nil
}

// ListForTeam lists styles published across a team's libraries.
func (c *StylesClient) ListForTeam(ctx context.Context, teamID string, opts *figma.ListOptions) (*figma.StylesResponse, error) {
	resp, err := c.httpClient.Get(ctx, "/teams/"+url.PathEscape(teamID)+"/styles", listQuery(opts))
	if err != nil {
		return nil, err
	}

	var styles figma.StylesResponse
	if err := unmarshalMeta(resp.Body, &styles); err != nil {
		return nil, err
	}

	return &styles, nil
}

// Get retrieves one published style by key.
func (c *StylesClient) Get(ctx context.Context, styleKey string) (*figma.PublishedStyle, error) {
	resp, err := c.httpClient.Get(ctx, "/styles/"+url.PathEscape(styleKey), nil)
	if err != nil {
		return nil, err
	}

	var style figma.PublishedStyle
	if err := unmarshalMeta(resp.Body, &style); err != nil {
		return nil, err
	}

	return &style, nil
}
