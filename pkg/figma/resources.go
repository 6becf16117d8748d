package figma

import "time"

// File represents a full design file as returned by the file endpoint.
type File struct {
	Name          string                  `json:"name"          yaml:"name"`
	Role          string                  `json:"role"          yaml:"role"`
	LastModified  time.Time               `json:"lastModified"  yaml:"lastModified"`
	ThumbnailURL  string                  `json:"thumbnailUrl"  yaml:"thumbnailUrl"`
	Version       string                  `json:"version"       yaml:"version"`
	EditorType    string                  `json:"editorType"    yaml:"editorType"`
	LinkAccess    string                  `json:"linkAccess"    yaml:"linkAccess"`
	SchemaVersion int                     `json:"schemaVersion" yaml:"schemaVersion"`
	Document      *Node                   `json:"document"      yaml:"document"`
	Components    map[string]Component    `json:"components"    yaml:"components"`
	ComponentSets map[string]ComponentSet `json:"componentSets" yaml:"componentSets"`
	Styles        map[string]Style        `json:"styles"        yaml:"styles"`
	Branches      []Branch                `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// Node represents a single node in the document tree. Only properties the
// scanner consumes are modeled; everything else stays in the raw tree.
type Node struct {
	ID                  string                 `json:"id"                            yaml:"id"`
	Name                string                 `json:"name"                          yaml:"name"`
	Type                string                 `json:"type"                          yaml:"type"`
	Visible             *bool                  `json:"visible,omitempty"             yaml:"visible,omitempty"`
	Children            []*Node                `json:"children,omitempty"            yaml:"children,omitempty"`
	ComponentID         string                 `json:"componentId,omitempty"         yaml:"componentId,omitempty"`
	ComponentProperties map[string]interface{} `json:"componentProperties,omitempty" yaml:"componentProperties,omitempty"`
	Styles              map[string]string      `json:"styles,omitempty"              yaml:"styles,omitempty"`
	BoundVariables      map[string]interface{} `json:"boundVariables,omitempty"      yaml:"boundVariables,omitempty"`
	CharacterStyleIDs   []int                  `json:"characterStyleOverrides,omitempty" yaml:"characterStyleOverrides,omitempty"`
	Characters          string                 `json:"characters,omitempty"          yaml:"characters,omitempty"`
}

// Branch represents a branch of a design file.
type Branch struct {
	Key          string    `json:"key"           yaml:"key"`
	Name         string    `json:"name"          yaml:"name"`
	ThumbnailURL string    `json:"thumbnail_url" yaml:"thumbnail_url"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
	LinkAccess   string    `json:"link_access"   yaml:"link_access"`
}

// Component represents component metadata embedded in a file response.
type Component struct {
	Key           string            `json:"key"                     yaml:"key"`
	Name          string            `json:"name"                    yaml:"name"`
	Description   string            `json:"description"             yaml:"description"`
	ComponentSetID string           `json:"componentSetId,omitempty" yaml:"componentSetId,omitempty"`
	DocumentationLinks []DocumentationLink `json:"documentationLinks,omitempty" yaml:"documentationLinks,omitempty"`
	Remote        bool              `json:"remote"                  yaml:"remote"`
}

// DocumentationLink represents a documentation link attached to a component.
type DocumentationLink struct {
	URI string `json:"uri" yaml:"uri"`
}

// ComponentSet represents component-set metadata embedded in a file response.
type ComponentSet struct {
	Key         string `json:"key"         yaml:"key"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Remote      bool   `json:"remote"      yaml:"remote"`
}

// Style represents style metadata embedded in a file response.
type Style struct {
	Key       string `json:"key"       yaml:"key"`
	Name      string `json:"name"      yaml:"name"`
	StyleType string `json:"styleType" yaml:"styleType"`
	Remote    bool   `json:"remote"    yaml:"remote"`
}

// User represents a user reference in library and comment payloads.
type User struct {
	ID     string `json:"id"      yaml:"id"`
	Handle string `json:"handle"  yaml:"handle"`
	ImgURL string `json:"img_url" yaml:"img_url"`
	Email  string `json:"email,omitempty" yaml:"email,omitempty"`
}

// FrameInfo locates a published item inside its containing frame.
type FrameInfo struct {
	NodeID          string `json:"nodeId,omitempty"          yaml:"nodeId,omitempty"`
	Name            string `json:"name,omitempty"            yaml:"name,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	PageID          string `json:"pageId,omitempty"          yaml:"pageId,omitempty"`
	PageName        string `json:"pageName,omitempty"        yaml:"pageName,omitempty"`
}

// PublishedComponent represents a published component from the library
// endpoints (file or team scope).
type PublishedComponent struct {
	Key             string     `json:"key"              yaml:"key"`
	FileKey         string     `json:"file_key"         yaml:"file_key"`
	NodeID          string     `json:"node_id"          yaml:"node_id"`
	ThumbnailURL    string     `json:"thumbnail_url"    yaml:"thumbnail_url"`
	Name            string     `json:"name"             yaml:"name"`
	Description     string     `json:"description"      yaml:"description"`
	CreatedAt       time.Time  `json:"created_at"       yaml:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"       yaml:"updated_at"`
	User            User       `json:"user"             yaml:"user"`
	ContainingFrame *FrameInfo `json:"containing_frame,omitempty" yaml:"containing_frame,omitempty"`
}

// PublishedComponentSet represents a published component set.
type PublishedComponentSet struct {
	Key             string     `json:"key"              yaml:"key"`
	FileKey         string     `json:"file_key"         yaml:"file_key"`
	NodeID          string     `json:"node_id"          yaml:"node_id"`
	ThumbnailURL    string     `json:"thumbnail_url"    yaml:"thumbnail_url"`
	Name            string     `json:"name"             yaml:"name"`
	Description     string     `json:"description"      yaml:"description"`
	CreatedAt       time.Time  `json:"created_at"       yaml:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"       yaml:"updated_at"`
	User            User       `json:"user"             yaml:"user"`
	ContainingFrame *FrameInfo `json:"containing_frame,omitempty" yaml:"containing_frame,omitempty"`
}

// PublishedStyle represents a published style.
type PublishedStyle struct {
	Key          string    `json:"key"           yaml:"key"`
	FileKey      string    `json:"file_key"      yaml:"file_key"`
	NodeID       string    `json:"node_id"       yaml:"node_id"`
	StyleType    string    `json:"style_type"    yaml:"style_type"`
	ThumbnailURL string    `json:"thumbnail_url" yaml:"thumbnail_url"`
	Name         string    `json:"name"          yaml:"name"`
	Description  string    `json:"description"   yaml:"description"`
	CreatedAt    time.Time `json:"created_at"    yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    yaml:"updated_at"`
	User         User      `json:"user"          yaml:"user"`
	SortPosition string    `json:"sort_position" yaml:"sort_position"`
}

// Variable represents a design variable (token) from the variables endpoints.
type Variable struct {
	ID                  string                 `json:"id"                  yaml:"id"`
	Name                string                 `json:"name"                yaml:"name"`
	Key                 string                 `json:"key"                 yaml:"key"`
	VariableCollectionID string                `json:"variableCollectionId" yaml:"variableCollectionId"`
	ResolvedType        string                 `json:"resolvedType"        yaml:"resolvedType"`
	Description         string                 `json:"description"         yaml:"description"`
	HiddenFromPublishing bool                  `json:"hiddenFromPublishing" yaml:"hiddenFromPublishing"`
	ValuesByMode        map[string]interface{} `json:"valuesByMode,omitempty" yaml:"valuesByMode,omitempty"`
	Scopes              []string               `json:"scopes,omitempty"    yaml:"scopes,omitempty"`
	CodeSyntax          map[string]string      `json:"codeSyntax,omitempty" yaml:"codeSyntax,omitempty"`
}

// VariableMode represents a mode of a variable collection.
type VariableMode struct {
	ModeID string `json:"modeId" yaml:"modeId"`
	Name   string `json:"name"   yaml:"name"`
}

// VariableCollection groups variables and their modes.
type VariableCollection struct {
	ID            string         `json:"id"            yaml:"id"`
	Name          string         `json:"name"          yaml:"name"`
	Key           string         `json:"key"           yaml:"key"`
	Modes         []VariableMode `json:"modes"         yaml:"modes"`
	DefaultModeID string         `json:"defaultModeId" yaml:"defaultModeId"`
	Remote        bool           `json:"remote"        yaml:"remote"`
	Hidden        bool           `json:"hiddenFromPublishing" yaml:"hiddenFromPublishing"`
	VariableIDs   []string       `json:"variableIds,omitempty" yaml:"variableIds,omitempty"`
}

// VariablesResponse carries local or published variables for a file.
type VariablesResponse struct {
	Variables   map[string]Variable           `json:"variables"           yaml:"variables"`
	Collections map[string]VariableCollection `json:"variableCollections" yaml:"variableCollections"`
}

// Comment represents a comment on a file.
type Comment struct {
	ID         string     `json:"id"                    yaml:"id"`
	FileKey    string     `json:"file_key"              yaml:"file_key"`
	ParentID   string     `json:"parent_id,omitempty"   yaml:"parent_id,omitempty"`
	User       User       `json:"user"                  yaml:"user"`
	CreatedAt  time.Time  `json:"created_at"            yaml:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
	Message    string     `json:"message"               yaml:"message"`
	OrderID    string     `json:"order_id,omitempty"    yaml:"order_id,omitempty"`
}

// FileMeta represents the lightweight file metadata endpoint payload.
type FileMeta struct {
	Name          string    `json:"name"            yaml:"name"`
	FolderName    string    `json:"folder_name"     yaml:"folder_name"`
	LastTouchedAt time.Time `json:"last_touched_at" yaml:"last_touched_at"`
	ThumbnailURL  string    `json:"thumbnail_url"   yaml:"thumbnail_url"`
	EditorType    string    `json:"editor_type"     yaml:"editor_type"`
	Role          string    `json:"role"            yaml:"role"`
	LinkAccess    string    `json:"link_access"     yaml:"link_access"`
	URL           string    `json:"url"             yaml:"url"`
	Version       string    `json:"version"         yaml:"version"`
	Creator       *User     `json:"creator,omitempty"         yaml:"creator,omitempty"`
	LastTouchedBy *User     `json:"last_touched_by,omitempty" yaml:"last_touched_by,omitempty"`
}

// Version represents one entry of a file's version history.
type Version struct {
	ID          string    `json:"id"          yaml:"id"`
	CreatedAt   time.Time `json:"created_at"  yaml:"created_at"`
	Label       string    `json:"label"       yaml:"label"`
	Description string    `json:"description" yaml:"description"`
	User        User      `json:"user"        yaml:"user"`
}

// DevResource represents a dev resource attached to a node.
type DevResource struct {
	ID      string `json:"id"       yaml:"id"`
	Name    string `json:"name"     yaml:"name"`
	URL     string `json:"url"      yaml:"url"`
	FileKey string `json:"file_key" yaml:"file_key"`
	NodeID  string `json:"node_id"  yaml:"node_id"`
}

// Project represents a project within a team.
type Project struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ProjectFile represents a file listed under a project.
type ProjectFile struct {
	Key          string    `json:"key"           yaml:"key"`
	Name         string    `json:"name"          yaml:"name"`
	ThumbnailURL string    `json:"thumbnail_url" yaml:"thumbnail_url"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
	Branches     []Branch  `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// NodeResult carries one node's subtree plus the library metadata scoped to it.
type NodeResult struct {
	Document      *Node                   `json:"document"      yaml:"document"`
	Components    map[string]Component    `json:"components"    yaml:"components"`
	ComponentSets map[string]ComponentSet `json:"componentSets" yaml:"componentSets"`
	Styles        map[string]Style        `json:"styles"        yaml:"styles"`
	SchemaVersion int                     `json:"schemaVersion" yaml:"schemaVersion"`
}

// NodesResponse is the payload of the nodes endpoint.
type NodesResponse struct {
	Name         string                 `json:"name"         yaml:"name"`
	LastModified time.Time              `json:"lastModified" yaml:"lastModified"`
	ThumbnailURL string                 `json:"thumbnailUrl" yaml:"thumbnailUrl"`
	Version      string                 `json:"version"      yaml:"version"`
	Nodes        map[string]*NodeResult `json:"nodes"        yaml:"nodes"`
}

// Cursor represents opaque pagination cursors on team listings. Values are
// forwarded on the next request, never interpreted.
type Cursor struct {
	Before int `json:"before,omitempty" yaml:"before,omitempty"`
	After  int `json:"after,omitempty"  yaml:"after,omitempty"`
}

// TeamProjectsResponse is the payload of the team projects endpoint.
type TeamProjectsResponse struct {
	Name     string    `json:"name"     yaml:"name"`
	Projects []Project `json:"projects" yaml:"projects"`
}

// ProjectFilesResponse is the payload of the project files endpoint.
type ProjectFilesResponse struct {
	Name  string        `json:"name"  yaml:"name"`
	Files []ProjectFile `json:"files" yaml:"files"`
}

// ComponentsResponse lists published components with an optional cursor.
type ComponentsResponse struct {
	Components []PublishedComponent `json:"components" yaml:"components"`
	Cursor     *Cursor              `json:"cursor,omitempty" yaml:"cursor,omitempty"`
}

// ComponentSetsResponse lists published component sets with an optional cursor.
type ComponentSetsResponse struct {
	ComponentSets []PublishedComponentSet `json:"component_sets" yaml:"component_sets"`
	Cursor        *Cursor                 `json:"cursor,omitempty" yaml:"cursor,omitempty"`
}

// StylesResponse lists published styles with an optional cursor.
type StylesResponse struct {
	Styles []PublishedStyle `json:"styles" yaml:"styles"`
	Cursor *Cursor          `json:"cursor,omitempty" yaml:"cursor,omitempty"`
}

// VersionsResponse lists a file's version history.
type VersionsResponse struct {
	Versions []Version `json:"versions" yaml:"versions"`
}

// CommentsResponse lists a file's comments.
type CommentsResponse struct {
	Comments []Comment `json:"comments" yaml:"comments"`
}

// DevResourcesResponse lists a file's dev resources.
type DevResourcesResponse struct {
	DevResources []DevResource `json:"dev_resources" yaml:"dev_resources"`
}

// ImageFillsResponse maps image refs to download URLs.
type ImageFillsResponse struct {
	Images map[string]string `json:"images" yaml:"images"`
}

// ImagesResponse maps node ids to rendered export URLs. A nil entry means
// the node could not be rendered.
type ImagesResponse struct {
	Err    string             `json:"err,omitempty" yaml:"err,omitempty"`
	Images map[string]*string `json:"images"        yaml:"images"`
}
