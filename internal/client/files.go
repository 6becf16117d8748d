package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/figdrift/figdrift/internal/constants"
	"github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

// FilesClient implements figma.FilesClient.
type FilesClient struct {
	httpClient *http.Client
	batchSize  int
}

// NewFilesClient creates a file accessor. batchSize bounds chunked node
// fetches; zero or negative falls back to the default.
func NewFilesClient(httpClient *http.Client, batchSize int) *FilesClient {
	if batchSize <= 0 {
		batchSize = constants.DefaultBatchSize
	}

	return &FilesClient{
		httpClient: httpClient,
		batchSize:  batchSize,
	}
}

// Get retrieves a full file.
func (c *FilesClient) Get(ctx context.Context, fileKey string, query *figma.FileQuery) (*figma.File, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	values := url.Values{}

	if query != nil {
		if query.Version != "" {
			values.Set("version", query.Version)
		}

		if query.Depth > 0 {
			values.Set("depth", strconv.Itoa(query.Depth))
		}

		if query.Geometry != "" {
			values.Set("geometry", query.Geometry)
		}

		if query.PluginData != "" {
			values.Set("plugin_data", query.PluginData)
		}

		if query.BranchData {
			values.Set("branch_data", "true")
		}
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey), values)
	if err != nil {
		return nil, err
	}

	var file figma.File
	if err := json.Unmarshal(resp.Body, &file); err != nil {
		return nil, fmt.Errorf("parsing file response: %w", err)
	}

	return &file, nil
}

// GetNodes retrieves specific nodes of a file in one request.
func (c *FilesClient) GetNodes(ctx context.Context, fileKey string, ids []string, query *figma.NodesQuery) (*figma.NodesResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	if len(ids) == 0 {
		return nil, figma.ErrNoNodeIDs
	}

	values := url.Values{}
	values.Set("ids", strings.Join(ids, ","))

	if query != nil {
		if query.Version != "" {
			values.Set("version", query.Version)
		}

		if query.Depth > 0 {
			values.Set("depth", strconv.Itoa(query.Depth))
		}

		if query.Geometry != "" {
			values.Set("geometry", query.Geometry)
		}

		if query.PluginData != "" {
			values.Set("plugin_data", query.PluginData)
		}
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/nodes", values)
	if err != nil {
		return nil, err
	}

	var nodes figma.NodesResponse
	if err := json.Unmarshal(resp.Body, &nodes); err != nil {
		return nil, fmt.Errorf("parsing nodes response: %w", err)
	}

	return &nodes, nil
}

// GetMeta retrieves lightweight file metadata. The endpoint nests the
// payload under a file key on newer API versions; both shapes decode.
func (c *FilesClient) GetMeta(ctx context.Context, fileKey string) (*figma.FileMeta, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/meta", nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		figma.FileMeta
		File *figma.FileMeta `json:"file,omitempty"`
	}

	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("parsing file meta response: %w", err)
	}

	if payload.File != nil {
		return payload.File, nil
	}

	return &payload.FileMeta, nil
}

// GetVersions retrieves the file's version history.
func (c *FilesClient) GetVersions(ctx context.Context, fileKey string) (*figma.VersionsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/versions", nil)
	if err != nil {
		return nil, err
	}

	var versions figma.VersionsResponse
	if err := json.Unmarshal(resp.Body, &versions); err != nil {
		return nil, fmt.Errorf("parsing versions response: %w", err)
	}

	return &versions, nil
}

// GetImageFills retrieves download URLs for image fills used in the file.
func (c *FilesClient) GetImageFills(ctx context.Context, fileKey string) (*figma.ImageFillsResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	resp, err := c.httpClient.Get(ctx, "/files/"+url.PathEscape(fileKey)+"/images", nil)
	if err != nil {
		return nil, err
	}

	var fills figma.ImageFillsResponse
	if err := unmarshalMeta(resp.Body, &fills); err != nil {
		return nil, err
	}

	return &fills, nil
}

// GetImageURLs renders nodes and returns export URLs keyed by node id.
func (c *FilesClient) GetImageURLs(ctx context.Context, fileKey string, ids []string, query *figma.ImageQuery) (*figma.ImagesResponse, error) {
	if fileKey == "" {
		return nil, figma.ErrNoFileKey
	}

	if len(ids) == 0 {
		return nil, figma.ErrNoNodeIDs
	}

	values := url.Values{}
	values.Set("ids", strings.Join(ids, ","))

	if query != nil {
		if query.Format != "" {
			values.Set("format", query.Format)
		}

		if query.Scale > 0 {
			values.Set("scale", strconv.FormatFloat(query.Scale, 'f', -1, 64))
		}

		if query.Version != "" {
			values.Set("version", query.Version)
		}
	}

	resp, err := c.httpClient.Get(ctx, "/images/"+url.PathEscape(fileKey), values)
	if err != nil {
		return nil, err
	}

	var images figma.ImagesResponse
	if err := json.Unmarshal(resp.Body, &images); err != nil {
		return nil, fmt.Errorf("parsing images response: %w", err)
	}

	return &images, nil
}
