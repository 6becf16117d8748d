package client

import (
	"context"
	"net/url"

	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// ComponentSetsClient implements figma.ComponentSetsClient.
type ComponentSetsClient struct {
	httpClient *http.Client
}

// NewComponentSetsClient creates a published component sets accessor.
func NewComponentSetsClient(httpClient *http.Client) *ComponentSetsClient {
	return &ComponentSetsClient{httpClient: httpClient}
}

// ListForFile lists component sets published from a file.
func (c *ComponentSetsClient) ListForFile(ctx context.Context, fileKey string) (*figma.ComponentSetsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/component_sets", nil)
	if err != nil {
		return nil, err
	}

	var sets figma.ComponentSetsResponse
	if err := unmarshalMeta(resp.Body, &sets); err != nil {
		return nil, err
	}

	return &sets, nil
}

// ListForTeam lists component sets published across a team's libraries.
func (c *ComponentSetsClient) ListForTeam(ctx context.Context, teamID string, opts *figma.ListOptions) (*figma.ComponentSetsResponse, error) {
	resp, err := c.httpClient.Get(ctx, "/teams/"+url.PathEscape(teamID)+"/component_sets", listQuery(opts))
	if err != nil {
		return nil, err
	}

	var sets figma.ComponentSetsResponse
	if err := unmarshalMeta(resp.Body, &sets); err != nil {
		return nil, err
	}

	return &sets, nil
}

// Get retrieves one published component set by key.
func (c *ComponentSetsClient) Get(ctx context.Context, componentSetKey string) (*figma.PublishedComponentSet, error) {
	resp, err := c.httpClient.Get(ctx, "/component_sets/"+url.PathEscape(componentSetKey), nil)
	if err != nil {
		return nil, err
	}

	var set figma.PublishedComponentSet
	if err := unmarshalMeta(resp.Body, &set); err != nil {
		return nil, err
	}

	return &set, nil
}
