package server

import (
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/projection"
	"inkwell/internal/surface"

	"github.com/gofiber/fiber/v2"
)

// Surface names, also used as path segments, metric labels and schema instance names.
const (
	DashboardSurface = "dashboard"
	PortalSurface    = "portal"
)

// Surfaces returns the route tables of both surfaces, versioned from the config.
func (s *Server) Surfaces() []surface.Surface {
	return []surface.Surface{s.dashboard(), s.portal()}
}

func (s *Server) dashboard() surface.Surface {
	return surface.Surface{
		Name:    DashboardSurface,
		Version: s.config.APIVersion,
		Secured: true,
		Middleware: []fiber.Handler{
			middleware.SurfaceTag(DashboardSurface),
			middleware.SurfaceMetrics(DashboardSurface),
			middleware.AuthRequired(s.authService),
		},
		Routes: []surface.Route{
			{Method: http.MethodGet, Path: "/posts", OperationID: "dashboard_posts_list", Tag: "posts",
				Summary: "List all posts, drafts included", Handler: s.DashboardListPosts,
				Response: projection.PostListView{}, Paginated: true},
			{Method: http.MethodPost, Path: "/posts", OperationID: "dashboard_posts_create", Tag: "posts",
				Summary: "Create a post authored by the caller", Handler: s.DashboardCreatePost,
				Body: projection.PostWrite{}, Response: projection.PostDetailView{}, Status: http.StatusCreated},
			{Method: http.MethodGet, Path: "/posts/:id", OperationID: "dashboard_posts_read", Tag: "posts",
				Summary: "Get a post with its comments", Handler: s.DashboardGetPost,
				Response: projection.PostDetailView{}},
			{Method: http.MethodPut, Path: "/posts/:id", OperationID: "dashboard_posts_update", Tag: "posts",
				Summary: "Replace a post's title and content", Handler: s.DashboardReplacePost,
				Body: projection.PostWrite{}, Response: projection.PostDetailView{}},
			{Method: http.MethodPatch, Path: "/posts/:id", OperationID: "dashboard_posts_partial_update", Tag: "posts",
				Summary: "Update some fields of a post", Handler: s.DashboardPatchPost,
				Body: projection.PostPatch{}, Response: projection.PostDetailView{}},
			{Method: http.MethodDelete, Path: "/posts/:id", OperationID: "dashboard_posts_delete", Tag: "posts",
				Summary: "Delete a post and its comments", Handler: s.DashboardDeletePost,
				Status: http.StatusNoContent},
			{Method: http.MethodGet, Path: "/comments", OperationID: "dashboard_comments_list", Tag: "comments",
				Summary: "List all comments", Handler: s.DashboardListComments,
				Response: projection.CommentView{}, Paginated: true},
			{Method: http.MethodPost, Path: "/comments", OperationID: "dashboard_comments_create", Tag: "comments",
				Summary: "Comment on a post as the caller", Handler: s.DashboardCreateComment,
				Body: projection.CommentCreate{}, Response: projection.CommentView{}, Status: http.StatusCreated},
			{Method: http.MethodGet, Path: "/comments/:id", OperationID: "dashboard_comments_read", Tag: "comments",
				Summary: "Get a comment", Handler: s.DashboardGetComment,
				Response: projection.CommentView{}},
			{Method: http.MethodDelete, Path: "/comments/:id", OperationID: "dashboard_comments_delete", Tag: "comments",
				Summary: "Delete a comment", Handler: s.DashboardDeleteComment,
				Status: http.StatusNoContent},
			{Method: http.MethodGet, Path: "/users/me", OperationID: "dashboard_users_me", Tag: "users",
				Summary: "Get the authenticated user", Handler: s.DashboardMe,
				Response: projection.UserView{}},
		},
	}
}

// portal is read-only: only GET routes exist, so other verbs fall through to NotFound.
func (s *Server) portal() surface.Surface {
	return surface.Surface{
		Name:    PortalSurface,
		Version: s.config.APIVersion,
		Middleware: []fiber.Handler{
			middleware.SurfaceTag(PortalSurface),
			middleware.SurfaceMetrics(PortalSurface),
		},
		Routes: []surface.Route{
			{Method: http.MethodGet, Path: "/posts", OperationID: "portal_posts_list", Tag: "posts",
				Summary: "List published posts", Handler: s.PortalListPosts,
				Response: projection.PublicPostListView{}, Paginated: true},
			{Method: http.MethodGet, Path: "/posts/:id", OperationID: "portal_posts_read", Tag: "posts",
				Summary: "Get a published post with its comments", Handler: s.PortalGetPost,
				Response: projection.PublicPostDetailView{}},
		},
	}
}
