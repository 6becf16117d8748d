package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figdrift/figdrift/internal/auth"
	"github.com/figdrift/figdrift/internal/client"
	figdrifthttp "github.com/figdrift/figdrift/internal/http"
	"github.com/figdrift/figdrift/pkg/figma"
)

func newBundle(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := figdrifthttp.NewClient(server.URL, auth.NewPersonalTokenProvider("token"))

	return client.New(httpClient, 0)
}

func TestComponentsListForFileUnwrapsMeta(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/abc/components", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"error": false,
			"status": 200,
			"meta": {
				"components": [
					{"key": "ck1", "name": "Button", "file_key": "abc", "node_id": "1:2"},
					{"key": "ck2", "name": "Input", "file_key": "abc", "node_id": "1:3"}
				]
			}
		}`))
	})

	components, err := bundle.Components().ListForFile(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, components.Components, 2)
	assert.Equal(t, "Button", components.Components[0].Name)
	assert.Equal(t, "1:3", components.Components[1].NodeID)
}

func TestComponentsListForTeamForwardsCursor(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/9001/components", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("page_size"))
		assert.Equal(t, "12345", r.URL.Query().Get("after"))

		_, _ = w.Write([]byte(`{
			"error": false,
			"status": 200,
			"meta": {
				"components": [{"key": "ck1", "name": "Button"}],
				"cursor": {"before": 12345, "after": 67890}
			}
		}`))
	})

	components, err := bundle.Components().ListForTeam(context.Background(), "9001", &figma.ListOptions{
		After:    12345,
		PageSize: 50,
	})
	require.NoError(t, err)
	require.Len(t, components.Components, 1)
	require.NotNil(t, components.Cursor)
	assert.Equal(t, 67890, components.Cursor.After)
}

func TestComponentsGet(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/components/ck1", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"error": false,
			"status": 200,
			"meta": {"key": "ck1", "name": "Button", "file_key": "abc", "node_id": "1:2"}
		}`))
	})

	component, err := bundle.Components().Get(context.Background(), "ck1")
	require.NoError(t, err)
	assert.Equal(t, "Button", component.Name)
	assert.Equal(t, "abc", component.FileKey)
}

func TestStylesListForFile(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/abc/styles", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"error": false,
			"status": 200,
			"meta": {
				"styles": [
					{"key": "sk1", "name": "Primary/500", "style_type": "FILL"},
					{"key": "sk2", "name": "Heading/L", "style_type": "TEXT"}
				]
			}
		}`))
	})

	styles, err := bundle.Styles().ListForFile(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, styles.Styles, 2)
	assert.Equal(t, "FILL", styles.Styles[0].StyleType)
	assert.Equal(t, "Heading/L", styles.Styles[1].Name)
}

func TestComponentSetsListForFile(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/abc/component_sets", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"error": false,
			"status": 200,
			"meta": {"component_sets": [{"key": "csk1", "name": "Button Set"}]}
		}`))
	})

	sets, err := bundle.ComponentSets().ListForFile(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, sets.ComponentSets, 1)
	assert.Equal(t, "Button Set", sets.ComponentSets[0].Name)
}

func TestVariablesGetLocal(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/abc/variables/local", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"status": 200,
			"error": false,
			"meta": {
				"variables": {
					"VariableID:1:10": {
						"id": "VariableID:1:10",
						"name": "color/primary",
						"resolvedType": "COLOR",
						"variableCollectionId": "VariableCollectionId:1:1"
					}
				},
				"variableCollections": {
					"VariableCollectionId:1:1": {
						"id": "VariableCollectionId:1:1",
						"name": "Semantic Colors",
						"modes": [{"modeId": "1:0", "name": "Light"}]
					}
				}
			}
		}`))
	})

	variables, err := bundle.Variables().GetLocal(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, variables.Variables, 1)
	assert.Equal(t, "color/primary", variables.Variables["VariableID:1:10"].Name)
	assert.Equal(t, "Light", variables.Collections["VariableCollectionId:1:1"].Modes[0].Name)
}

func TestVariablesGetPublishedPath(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/abc/variables/published", r.URL.Path)
		_, _ = w.Write([]byte(`{"status": 200, "error": false, "meta": {"variables": {}, "variableCollections": {}}}`))
	})

	_, err := bundle.Variables().GetPublished(context.Background(), "abc")
	require.NoError(t, err)
}

func TestCommentsList(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/abc/comments", r.URL.Path)

		_, _ = w.Write([]byte(`{"comments": [
			{"id": "c1", "message": "Spacing looks off", "user": {"handle": "dana"}}
		]}`))
	})

	comments, err := bundle.Comments().List(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, comments.Comments, 1)
	assert.Equal(t, "Spacing looks off", comments.Comments[0].Message)
}

func TestDevResourcesList(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/abc/dev_resources", r.URL.Path)

		_, _ = w.Write([]byte(`{"dev_resources": [
			{"id": "dr1", "name": "Storybook", "url": "https://storybook.example", "node_id": "1:2"}
		]}`))
	})

	resources, err := bundle.DevResources().List(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, resources.DevResources, 1)
	assert.Equal(t, "Storybook", resources.DevResources[0].Name)
}

func TestTeamsGetProjects(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/9001/projects", r.URL.Path)

		_, _ = w.Write([]byte(`{"name": "Design Org", "projects": [{"id": "p1", "name": "Web"}]}`))
	})

	projects, err := bundle.Teams().GetProjects(context.Background(), "9001")
	require.NoError(t, err)
	assert.Equal(t, "Design Org", projects.Name)
	require.Len(t, projects.Projects, 1)
	assert.Equal(t, "Web", projects.Projects[0].Name)
}

func TestProjectsGetFiles(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/p1/files", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("branch_data"))

		_, _ = w.Write([]byte(`{"name": "Web", "files": [{"key": "abc", "name": "Design System"}]}`))
	})

	files, err := bundle.Projects().GetFiles(context.Background(), "p1", true)
	require.NoError(t, err)
	require.Len(t, files.Files, 1)
	assert.Equal(t, "abc", files.Files[0].Key)
}

func TestUsersMe(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)

		_, _ = w.Write([]byte(`{"id": "u1", "handle": "dana", "email": "dana@example.com"}`))
	})

	user, err := bundle.Users().Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dana", user.Handle)
	assert.Equal(t, "dana@example.com", user.Email)
}

func TestListForFileRequiresFileKey(t *testing.T) {
	t.Parallel()

	bundle := newBundle(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := bundle.Components().ListForFile(context.Background(), "")
	require.ErrorIs(t, err, figma.ErrNoFileKey)

	_, err = bundle.Styles().ListForFile(context.Background(), "")
	require.ErrorIs(t, err, figma.ErrNoFileKey)

	_, err = bundle.Variables().GetLocal(context.Background(), "")
	require.ErrorIs(t, err, figma.ErrNoFileKey)
}
