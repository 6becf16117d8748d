package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// ComponentsClient implements figma.ComponentsClient.
type ComponentsClient struct {
	httpClient *http.Client
}

// NewComponentsClient creates a published components accessor.
func NewComponentsClient(httpClient *http.Client) *ComponentsClient {
	return &ComponentsClient{httpClient: httpClient}
}

// ListForFile lists components published from a file.
func (c *ComponentsClient) ListForFile(ctx context.Context, fileKey string) (*figma.ComponentsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/components", nil)
	if err != nil {
		return nil, err
	}

	var components figma.ComponentsResponse
	if err := unmarshalMeta(resp.Body, &components); err != nil {
		return nil, err
	}

	return &components, nil
}

// ListForTeam lists components published across a team's libraries.
func (c *ComponentsClient) ListForTeam(ctx context.Context, teamID string, opts *figma.ListOptions) (*figma.ComponentsResponse, error) {
	resp, err := c.httpClient.Get(ctx, "/teams/"+url.PathEscape(teamID)+"/components", listQuery(opts))
	if err != nil {
		return nil, err
	}

	var components figma.ComponentsResponse
	if err := unmarshalMeta(resp.Body, &components); err != nil {
		return nil, err
	}

	return &components, nil
}

// Get retrieves one published component by key.
func (c *ComponentsClient) Get(ctx context.Context, componentKey string) (*figma.PublishedComponent, error) {
	resp, err := c.httpClient.Get(ctx, "/components/"+url.PathEscape(componentKey), nil)
	if err != nil {
		return nil, err
	}

	var component figma.PublishedComponent
	if err := unmarshalMeta(resp.Body, &component); err != nil {
		return nil, err
	}

	return &component, nil
}

// listQuery translates cursor pagination options into query parameters.
// Cursor values are forwarded verbatim, never interpreted.
func listQuery(opts *figma.ListOptions) url.Values {
	if opts == nil {
		return nil
	}

	values := url.Values{}

	if opts.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(opts.PageSize))
	}

	if opts.After > 0 {
		values.Set("after", strconv.Itoa(opts.After))
	}

	return values
}
