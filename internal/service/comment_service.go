package service

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Content  string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) ListComments(ctx context.Context, page pagination.Params) ([]*models.Comment, int64, error) {
	total, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !page.Covers(total) {
		return []*models.Comment{}, total, nil
	}
	comments, err := s.commentRepo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// CreateComment attaches a comment to an existing post. A missing post is a
// validation error on the "post" field rather than a 404, because the id came from the body.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (comment *models.Comment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "CreateComment")
	defer func() { observability.EndSpan(span, err) }()

	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fieldError("content", "This field is required.")
	}

	exists, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fieldError("post", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", in.PostID))
	}

	comment = &models.Comment{
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	return s.commentRepo.Delete(ctx, id)
}
