package figma

import (
	"context"
	"net/url"
	"strings"
)

// FilesClient provides access to file, node and export endpoints.
type FilesClient interface {
	// Get retrieves a full file, optionally pinned to a version or limited
	// in depth.
	Get(ctx context.Context, fileKey string, query *FileQuery) (*File, error)
	// GetNodes retrieves specific nodes of a file in a single request.
	GetNodes(ctx context.Context, fileKey string, ids []string, query *NodesQuery) (*NodesResponse, error)
	// GetNodesBatched splits ids into size-bounded chunks, fetches each
	// chunk through the full client stack and merges the node maps. A
	// failing chunk aborts the whole call.
	GetNodesBatched(ctx context.Context, fileKey string, ids []string, opts *BatchOptions) (map[string]*NodeResult, error)
	// GetMeta retrieves lightweight file metadata.
	GetMeta(ctx context.Context, fileKey string) (*FileMeta, error)
	// GetVersions retrieves the file's version history.
	GetVersions(ctx context.Context, fileKey string) (*VersionsResponse, error)
	// GetImageFills retrieves download URLs for image fills used in the file.
	GetImageFills(ctx context.Context, fileKey string) (*ImageFillsResponse, error)
	// GetImageURLs renders nodes and returns export URLs keyed by node id.
	GetImageURLs(ctx context.Context, fileKey string, ids []string, query *ImageQuery) (*ImagesResponse, error)
}

// ComponentsClient provides access to published component endpoints.
type ComponentsClient interface {
	ListForFile(ctx context.Context, fileKey string) (*ComponentsResponse, error)
	ListForTeam(ctx context.Context, teamID string, opts *ListOptions) (*ComponentsResponse, error)
	Get(ctx context.Context, componentKey string) (*PublishedComponent, error)
}

// ComponentSetsClient provides access to published component-set endpoints.
type ComponentSetsClient interface {
	ListForFile(ctx context.Context, fileKey string) (*ComponentSetsResponse, error)
	ListForTeam(ctx context.Context, teamID string, opts *ListOptions) (*ComponentSetsResponse, error)
	Get(ctx context.Context, componentSetKey string) (*PublishedComponentSet, error)
}

// StylesClient provides access to published style endpoints.
type StylesClient interface {
	ListForFile(ctx context.Context, fileKey string) (*StylesResponse, error)
	ListForTeam(ctx context.Context, teamID string, opts *ListOptions) (*StylesResponse, error)
	Get(ctx context.Context, styleKey string) (*PublishedStyle, error)
}

// VariablesClient provides access to design variable (token) endpoints.
type VariablesClient interface {
	GetLocal(ctx context.Context, fileKey string) (*VariablesResponse, error)
	GetPublished(ctx context.Context, fileKey string) (*VariablesResponse, error)
}

// CommentsClient provides access to file comments.
type CommentsClient interface {
	List(ctx context.Context, fileKey string) (*CommentsResponse, error)
}

// DevResourcesClient provides access to dev resources attached to a file.
type DevResourcesClient interface {
	List(ctx context.Context, fileKey string) (*DevResourcesResponse, error)
}

// TeamsClient provides access to team-level listings.
type TeamsClient interface {
	GetProjects(ctx context.Context, teamID string) (*TeamProjectsResponse, error)
}

// ProjectsClient provides access to project-level listings.
type ProjectsClient interface {
	GetFiles(ctx context.Context, projectID string, branchData bool) (*ProjectFilesResponse, error)
}

// UsersClient provides access to the authenticated user.
type UsersClient interface {
	Me(ctx context.Context) (*User, error)
}

// LibraryClients groups the published-asset resource clients.
type LibraryClients interface {
	Components() ComponentsClient
	ComponentSets() ComponentSetsClient
	Styles() StylesClient
	Variables() VariablesClient
}

// WorkspaceClients groups team and project listings.
type WorkspaceClients interface {
	Teams() TeamsClient
	Projects() ProjectsClient
	Users() UsersClient
}

// Client is the complete design-file API client surface consumed by the
// scanners. All calls route through one executor that applies auth,
// per-attempt timeouts, retries with backoff, rate-limit tracking, response
// caching and in-flight deduplication.
type Client interface {
	LibraryClients
	WorkspaceClients

	Files() FilesClient
	Comments() CommentsClient
	DevResources() DevResourcesClient

	// RateLimit returns a snapshot of the last-seen rate-limit state.
	RateLimit() RateLimitInfo
	// ClearCache invalidates every cached entry immediately.
	ClearCache(ctx context.Context) error
}

// FileURL builds a shareable web URL for a file, optionally deep-linked to
// a node. It performs no network call. Node ids use ':' on the API surface
// but '-' in web URLs.
func FileURL(fileKey, nodeID string) string {
	u := "https://www.figma.com/design/" + url.PathEscape(fileKey)
	if nodeID == "" {
		return u
	}

	values := url.Values{}
	values.Set("node-id", strings.ReplaceAll(nodeID, ":", "-"))

	return u + "?" + values.Encode()
}
