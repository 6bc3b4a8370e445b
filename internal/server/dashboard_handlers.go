package server

import (
	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/projection"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DashboardListPosts handles GET /dashboard/posts. Drafts are included.
func (s *Server) DashboardListPosts(c *fiber.Ctx) error {
	page, err := pagination.FromRequest(c, s.pageLimits())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	posts, total, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		Filter: repository.PostFilter{},
		Page:   page,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	items := projection.Map(posts, projection.FullPostListItem)
	return c.JSON(pagination.New(items, total, page, pagination.RequestURL(c)))
}

// DashboardCreatePost handles POST /dashboard/posts. The author is always the caller.
func (s *Server) DashboardCreatePost(c *fiber.Ctx) error {
	userID, ok := principal(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	body, err := projection.DecodePostWrite(c.Body())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	in := service.CreatePostInput{AuthorID: userID, Title: body.Title, Content: body.Content}
	if body.IsPublished != nil {
		in.IsPublished = *body.IsPublished
	}
	post, err := s.postService.CreatePost(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(projection.FullPostDetail(post))
}

// DashboardGetPost handles GET /dashboard/posts/:id
func (s *Server) DashboardGetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, repository.PostFilter{})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(projection.FullPostDetail(post))
}

// DashboardReplacePost handles PUT /dashboard/posts/:id. Title and content are required;
// an omitted is_published keeps its stored value.
func (s *Server) DashboardReplacePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	body, err := projection.DecodePostWrite(c.Body())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return s.updatePost(c, service.UpdatePostInput{
		PostID:      id,
		Title:       &body.Title,
		Content:     &body.Content,
		IsPublished: body.IsPublished,
	})
}

// DashboardPatchPost handles PATCH /dashboard/posts/:id
func (s *Server) DashboardPatchPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	body, err := projection.DecodePostPatch(c.Body())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return s.updatePost(c, service.UpdatePostInput{
		PostID:      id,
		Title:       body.Title,
		Content:     body.Content,
		IsPublished: body.IsPublished,
	})
}

func (s *Server) updatePost(c *fiber.Ctx, in service.UpdatePostInput) error {
	post, err := s.postService.UpdatePost(c.UserContext(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(projection.FullPostDetail(post))
}

// DashboardDeletePost handles DELETE /dashboard/posts/:id
func (s *Server) DashboardDeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DashboardListComments handles GET /dashboard/comments
func (s *Server) DashboardListComments(c *fiber.Ctx) error {
	page, err := pagination.FromRequest(c, s.pageLimits())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comments, total, err := s.commentService.ListComments(c.UserContext(), page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	items := projection.Map(comments, projection.FullComment)
	return c.JSON(pagination.New(items, total, page, pagination.RequestURL(c)))
}

// DashboardCreateComment handles POST /dashboard/comments
func (s *Server) DashboardCreateComment(c *fiber.Ctx) error {
	userID, ok := principal(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	body, err := projection.DecodeCommentCreate(c.Body())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		AuthorID: userID,
		PostID:   *body.Post,
		Content:  body.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(projection.FullComment(comment))
}

// DashboardGetComment handles GET /dashboard/comments/:id
func (s *Server) DashboardGetComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(projection.FullComment(comment))
}

// DashboardDeleteComment handles DELETE /dashboard/comments/:id
func (s *Server) DashboardDeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DashboardMe handles GET /dashboard/users/me. A token whose user is gone is a 401.
func (s *Server) DashboardMe(c *fiber.Ctx) error {
	userID, ok := principal(c)
	if !ok {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Authentication required"))
	}

	user, err := s.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		if appErr := models.AsAppError(err); appErr.Code == models.CodeNotFound {
			return models.RespondWithAppError(c, models.NewUnauthorizedError("User not found"))
		}
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(projection.FullUser(user))
}
