package server

import (
	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/projection"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// published is the only filter the portal ever queries with.
var published = repository.PostFilter{PublishedOnly: true}

// PortalListPosts handles GET /portal/posts
func (s *Server) PortalListPosts(c *fiber.Ctx) error {
	page, err := pagination.FromRequest(c, s.pageLimits())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	posts, total, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		Filter: published,
		Page:   page,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	items := projection.Map(posts, projection.PublicPostListItem)
	return c.JSON(pagination.New(items, total, page, pagination.RequestURL(c)))
}

// PortalGetPost handles GET /portal/posts/:id. Drafts answer exactly like unknown ids.
func (s *Server) PortalGetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, published)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(projection.PublicPostDetail(post))
}
