package openapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/projection"
	"inkwell/internal/surface"

	"github.com/go-openapi/spec"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(c *fiber.Ctx) error { return nil }

func testSurfaces() (surface.Surface, surface.Surface) {
	portal := surface.Surface{
		Name:    "portal",
		Version: "v1",
		Routes: []surface.Route{
			{Method: http.MethodGet, Path: "/posts", OperationID: "portal_posts_list", Tag: "posts",
				Handler: noop, Response: projection.PublicPostListView{}, Paginated: true},
			{Method: http.MethodGet, Path: "/posts/:id", OperationID: "portal_posts_read", Tag: "posts",
				Handler: noop, Response: projection.PublicPostDetailView{}},
		},
	}
	dashboard := surface.Surface{
		Name:    "dashboard",
		Version: "v1",
		Secured: true,
		Routes: []surface.Route{
			{Method: http.MethodPost, Path: "/posts", OperationID: "dashboard_posts_create", Tag: "posts",
				Handler: noop, Body: projection.PostWrite{}, Response: projection.PostDetailView{}, Status: http.StatusCreated},
			{Method: http.MethodDelete, Path: "/posts/:id", OperationID: "dashboard_posts_delete", Tag: "posts",
				Handler: noop, Status: http.StatusNoContent},
		},
	}
	return portal, dashboard
}

func TestBuild_PortalDocumentOnlyDescribesPortal(t *testing.T) {
	portal, _ := testSurfaces()
	doc, err := Build(portal, Info{Title: "Portal"})
	require.NoError(t, err)

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "v1", doc.Info.Version)
	require.Len(t, doc.Paths.Paths, 2)
	for path := range doc.Paths.Paths {
		assert.True(t, strings.HasPrefix(path, "/api/v1/portal/"), path)
	}
	assert.Empty(t, doc.SecurityDefinitions)

	detail := doc.Paths.Paths["/api/v1/portal/posts/{id}"]
	require.NotNil(t, detail.Get)
	assert.Nil(t, detail.Put)
	assert.Nil(t, detail.Delete)
	require.Len(t, detail.Get.Parameters, 1)
	assert.Equal(t, "id", detail.Get.Parameters[0].Name)
	assert.Equal(t, "path", detail.Get.Parameters[0].In)
	assert.Contains(t, detail.Get.Responses.StatusCodeResponses, http.StatusNotFound)

	for name := range doc.Definitions {
		assert.NotContains(t, []string{"UserView", "PostDetailView", "CommentView", "PostWrite"}, name,
			"portal document must not reference dashboard shapes")
	}
	author := doc.Definitions["PublicUserView"]
	assert.ElementsMatch(t, []string{"id", "username"}, keys(author.Properties))
}

func TestBuild_PaginatedEnvelope(t *testing.T) {
	portal, _ := testSurfaces()
	doc, err := Build(portal, Info{})
	require.NoError(t, err)

	list := doc.Paths.Paths["/api/v1/portal/posts"].Get
	require.NotNil(t, list)
	var names []string
	for _, p := range list.Parameters {
		assert.Equal(t, "query", p.In)
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"page", "page_size"}, names)

	ok := list.Responses.StatusCodeResponses[http.StatusOK]
	assert.Equal(t, "#/definitions/PaginatedPublicPostListView", ok.Schema.Ref.String())

	envelope := doc.Definitions["PaginatedPublicPostListView"]
	assert.ElementsMatch(t, []string{"count", "next", "previous", "results"}, keys(envelope.Properties))
	assert.Equal(t, true, envelope.Properties["next"].Extensions["x-nullable"])
	assert.Equal(t, "#/definitions/PublicPostListView", envelope.Properties["results"].Items.Schema.Ref.String())
}

func TestBuild_DashboardSecurityAndPayloads(t *testing.T) {
	_, dashboard := testSurfaces()
	doc, err := Build(dashboard, Info{})
	require.NoError(t, err)

	require.Contains(t, doc.SecurityDefinitions, "Bearer")
	assert.Equal(t, "header", doc.SecurityDefinitions["Bearer"].In)

	create := doc.Paths.Paths["/api/v1/dashboard/posts"].Post
	require.NotNil(t, create)
	require.Len(t, create.Security, 1)
	assert.Contains(t, create.Security[0], "Bearer")
	assert.Contains(t, create.Responses.StatusCodeResponses, http.StatusCreated)
	assert.Contains(t, create.Responses.StatusCodeResponses, http.StatusUnauthorized)
	assert.Contains(t, create.Responses.StatusCodeResponses, http.StatusBadRequest)

	write := doc.Definitions["PostWrite"]
	assert.ElementsMatch(t, []string{"title", "content"}, write.Required)
	require.NotNil(t, write.Properties["title"].MaxLength)
	assert.Equal(t, int64(200), *write.Properties["title"].MaxLength)

	del := doc.Paths.Paths["/api/v1/dashboard/posts/{id}"].Delete
	require.NotNil(t, del)
	noContent := del.Responses.StatusCodeResponses[http.StatusNoContent]
	assert.Nil(t, noContent.Schema)

	detail := doc.Definitions["PostDetailView"]
	assert.Equal(t, "date-time", detail.Properties["created_at"].Format)
	assert.Equal(t, "#/definitions/CommentView", detail.Properties["comments"].Items.Schema.Ref.String())
}

func TestBuild_RejectsInvalidSurface(t *testing.T) {
	_, err := Build(surface.Surface{Name: "x", Version: "v1", Routes: []surface.Route{{Method: "GET", Path: "/a"}}}, Info{})
	assert.Error(t, err)
}

func TestArtifacts_WriteAndRead(t *testing.T) {
	portal, _ := testSurfaces()
	doc, err := Build(portal, Info{})
	require.NoError(t, err)
	dir := t.TempDir()

	for _, format := range []string{FormatJSON, FormatYAML} {
		path, err := WriteArtifact(doc, dir, portal.Name, format)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "openapi.portal."+format), path)

		loaded, err := ReadArtifact(path)
		require.NoError(t, err)
		assert.Empty(t, Compare(doc, loaded), format)
		assert.Contains(t, loaded.Paths.Paths["/api/v1/portal/posts/{id}"].Get.Responses.StatusCodeResponses, http.StatusOK)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "openapi.portal.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"200":`)

	_, err = Encode(doc, "xml")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	_, dashboard := testSurfaces()
	base, err := Build(dashboard, Info{})
	require.NoError(t, err)

	revised := dashboard
	revised.Routes = []surface.Route{dashboard.Routes[0]}
	revision, err := Build(revised, Info{})
	require.NoError(t, err)

	changes := Compare(base, revision)
	require.Len(t, changes, 1)
	assert.Equal(t, RemovedPath, changes[0].Kind)
	assert.Equal(t, "/api/v1/dashboard/posts/{id}", changes[0].Path)

	revision, err = Build(dashboard, Info{})
	require.NoError(t, err)
	create := revision.Paths.Paths["/api/v1/dashboard/posts"]
	delete(create.Post.Responses.StatusCodeResponses, http.StatusBadRequest)
	revision.Paths.Paths["/api/v1/dashboard/posts"] = create
	item := revision.Paths.Paths["/api/v1/dashboard/posts/{id}"]
	item.Delete = nil
	item.Get = spec.NewOperation("added")
	revision.Paths.Paths["/api/v1/dashboard/posts/{id}"] = item

	changes = Compare(base, revision)
	require.Len(t, changes, 2)
	assert.Equal(t, Change{Kind: RemovedResponse, Path: "/api/v1/dashboard/posts", Method: "POST", Status: "400"}, changes[0])
	assert.Equal(t, Change{Kind: RemovedOperation, Path: "/api/v1/dashboard/posts/{id}", Method: "DELETE"}, changes[1])
	assert.Contains(t, changes[1].String(), "DELETE")
}

func keys(m spec.SchemaProperties) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
