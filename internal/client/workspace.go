package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// TeamsClient implements figma.TeamsClient.
type TeamsClient struct {
	httpClient *http.Client
}

// NewTeamsClient creates a team listings accessor.
func NewTeamsClient(httpClient *http.Client) *TeamsClient {
	return &TeamsClient{httpClient: httpClient}
}

// GetProjects lists the projects of a team.
func (c *TeamsClient) GetProjects(ctx context.Context, teamID string) (*figma.TeamProjectsResponse, error) {
	resp, err := c.httpClient.Get(ctx, "/teams/"+url.PathEscape(teamID)+"/projects", nil)
	if err != nil {
		return nil, err
	}

	var projects figma.TeamProjectsResponse
	if err := json.Unmarshal(resp.Body, &projects); err != nil {
		return nil, fmt.Errorf("parsing team projects response: %w", err)
	}

	return &projects, nil
}

// ProjectsClient implements figma.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a project listings accessor.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

// GetFiles lists the files of a project, optionally with branch metadata.
func (c *ProjectsClient) GetFiles(ctx context.Context, projectID string, branchData bool) (*figma.ProjectFilesResponse, error) {
	var values url.Values

	if branchData {
		values = url.Values{}
		values.Set("branch_data", "true")
	}

	resp, err := c.httpClient.Get(ctx, "/projects/"+url.PathEscape(projectID)+"/files", values)
	if err != nil {
		return nil, err
	}

	var files figma.ProjectFilesResponse
	if err := json.Unmarshal(resp.Body, &files); err != nil {
		return nil, fmt.Errorf("parsing project files response: %w", err)
	}

	return &files, nil
}

// UsersClient implements figma.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a user accessor.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// Me retrieves the user the access token belongs to.
func (c *UsersClient) Me(ctx context.Context) (*figma.User, error) {
	resp, err := c.httpClient.Get(ctx, "/me", nil)
	if err != nil {
		return nil, err
	}

	var user figma.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}
