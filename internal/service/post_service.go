// Package service holds the business rules shared by both API surfaces.
package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	// AuthorID is always the acting principal; clients cannot choose it.
	AuthorID    uint
	Title       string
	Content     string
	IsPublished bool
}

// UpdatePostInput carries the fields to change; nil fields keep their stored value.
type UpdatePostInput struct {
	PostID      uint
	Title       *string
	Content     *string
	IsPublished *bool
}

type ListPostsInput struct {
	Filter repository.PostFilter
	Page   pagination.Params
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns one page of posts plus the total number visible under the filter.
// Out-of-range pages yield no rows but still report the total.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (posts []*models.Post, total int64, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "ListPosts",
		attribute.Bool("posts.published_only", in.Filter.PublishedOnly),
		attribute.Int("page", in.Page.Page),
	)
	defer func() { observability.EndSpan(span, err) }()

	total, err = s.postRepo.Count(ctx, in.Filter)
	if err != nil {
		return nil, 0, err
	}
	if !in.Page.Covers(total) {
		return []*models.Post{}, total, nil
	}

	posts, err = s.postRepo.List(ctx, in.Filter, in.Page.Limit(), in.Page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, filter repository.PostFilter) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, filter)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "CreatePost")
	defer func() { observability.EndSpan(span, err) }()

	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := validatePostText(in.Title, in.Content); err != nil {
		return nil, err
	}

	post = &models.Post{
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		AuthorID:    in.AuthorID,
		IsPublished: in.IsPublished,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, repository.PostFilter{})
}

// UpdatePost applies in to the post. The author never changes and updated_at is always refreshed.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "UpdatePost",
		attribute.Int64("post.id", int64(in.PostID)))
	defer func() { observability.EndSpan(span, err) }()

	fields := map[string]interface{}{"updated_at": time.Now()}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, fieldError("content", "This field may not be blank.")
		}
		fields["content"] = content
	}
	if in.IsPublished != nil {
		fields["is_published"] = *in.IsPublished
	}

	if err := s.postRepo.Update(ctx, in.PostID, fields); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, repository.PostFilter{})
}

func (s *PostService) DeletePost(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "DeletePost",
		attribute.Int64("post.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	return s.postRepo.Delete(ctx, id)
}

func validatePostText(title, content string) error {
	if err := validateTitle(strings.TrimSpace(title)); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fieldError("content", "This field is required.")
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return fieldError("title", "This field may not be blank.")
	}
	if len([]rune(title)) > models.PostTitleMaxLength {
		return fieldError("title", "Ensure this field has no more than 200 characters.")
	}
	return nil
}

func fieldError(field, message string) *models.AppError {
	return models.NewFieldValidationError(map[string]string{field: message})
}
