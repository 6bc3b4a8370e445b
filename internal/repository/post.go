package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows which posts a query can see.
type PostFilter struct {
	// PublishedOnly restricts every query, including counts and single-row lookups, to published posts.
	PublishedOnly bool
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID loads a post with its author, comment count and comments (newest first).
	GetByID(ctx context.Context, id uint, filter PostFilter) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// Update writes the given columns and refreshes updated_at.
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	// Delete removes the post and its comments in one transaction.
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// Select forces is_published into the INSERT even when false.
	err := r.db.WithContext(ctx).
		Select("Title", "Content", "AuthorID", "IsPublished", "CreatedAt", "UpdatedAt").
		Create(post).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, filter PostFilter) (*models.Post, error) {
	var post models.Post
	err := r.scoped(r.db.WithContext(ctx), filter).
		Scopes(withCommentCount).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order(newestFirst("comments"))
		}).
		Preload("Comments.Author").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, mapError(err, "Post")
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.scoped(r.db.WithContext(ctx), filter).
		Scopes(withCommentCount).
		Preload("Author").
		Order(newestFirst("posts")).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	if err := r.scoped(r.db.WithContext(ctx), filter).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Post{ID: id}).Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post")
		}
		return nil
	})
	return mapError(err, "Post")
}

// scoped applies the publication filter in SQL so hidden rows never leave the database.
func (r *postRepository) scoped(db *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.PublishedOnly {
		return db.Where("posts.is_published = ?", true)
	}
	return db
}

// withCommentCount selects the derived comment count alongside the post columns.
func withCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count")
}
