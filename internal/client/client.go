// Package client implements the resource accessors behind the public
// figma.Client interface. Each accessor translates a typed call into one
// request descriptor and hands it to the shared executor; no accessor
// carries retry, cache or auth logic of its own.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// Client bundles every resource accessor over one shared executor.
type Client struct {
	httpClient *http.Client

	files         *FilesClient
	components    *ComponentsClient
	componentSets *ComponentSetsClient
	styles        *StylesClient
	variables     *VariablesClient
	comments      *CommentsClient
	devResources  *DevResourcesClient
	teams         *TeamsClient
	projects      *ProjectsClient
	users         *UsersClient
}

// New creates the accessor bundle. batchSize bounds chunked node fetches;
// zero or negative falls back to the default.
func New(httpClient *http.Client, batchSize int) *Client {
	return &Client{
		httpClient:    httpClient,
		files:         NewFilesClient(httpClient, batchSize),
		components:    NewComponentsClient(httpClient),
		componentSets: NewComponentSetsClient(httpClient),
		styles:        NewStylesClient(httpClient),
		variables:     NewVariablesClient(httpClient),
		comments:      NewCommentsClient(httpClient),
		devResources:  NewDevResourcesClient(httpClient),
		teams:         NewTeamsClient(httpClient),
		projects:      NewProjectsClient(httpClient),
		users:         NewUsersClient(httpClient),
	}
}

// Files returns the file accessor.
func (c *Client) Files() figma.FilesClient { return c.files }

// Components returns the published components accessor.
func (c *Client) Components() figma.ComponentsClient { return c.components }

// ComponentSets returns the published component sets accessor.
func (c *Client) ComponentSets() figma.ComponentSetsClient { return c.componentSets }

// Styles returns the published styles accessor.
func (c *Client) Styles() figma.StylesClient { return c.styles }

// Variables returns the design variables accessor.
func (c *Client) Variables() figma.VariablesClient { return c.variables }

// Comments returns the comments accessor.
func (c *Client) Comments() figma.CommentsClient { return c.comments }

// DevResources returns the dev resources accessor.
func (c *Client) DevResources() figma.DevResourcesClient { return c.devResources }

// Teams returns the team listings accessor.
func (c *Client) Teams() figma.TeamsClient { return c.teams }

// Projects returns the project listings accessor.
func (c *Client) Projects() figma.ProjectsClient { return c.projects }

// Users returns the user accessor.
func (c *Client) Users() figma.UsersClient { return c.users }

// RateLimit returns a snapshot of the last-seen rate-limit state.
func (c *Client) RateLimit() figma.RateLimitInfo {
	return c.httpClient.RateLimit()
}

// ClearCache invalidates every cached entry immediately.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.httpClient.ClearCache(ctx)
}

// metaEnvelope is the wrapper the library and variables endpoints put
// around their payloads.
type metaEnvelope struct {
	Error   bool            `json:"error"`
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Meta    json.RawMessage `json:"meta"`
}

// unmarshalMeta decodes a meta-wrapped payload into out. Plain payloads
// without the wrapper decode directly.
func unmarshalMeta(body []byte, out interface{}) error {
	var envelope metaEnvelope

	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Meta) > 0 {
		if err := json.Unmarshal(envelope.Meta, out); err != nil {
			return fmt.Errorf("parsing meta payload: %w", err)
		}

		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response payload: %w", err)
	}

	return nil
}
