package models

import "time"

// PostTitleMaxLength bounds Post.Title.
const PostTitleMaxLength = 200

// Post is an article owned by its author. Only published posts are visible on the portal.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`
	Author      User   `gorm:"foreignKey:AuthorID" json:"author"`
	IsPublished bool   `gorm:"not null;default:false;index" json:"is_published"`
	// CommentCount is not persisted; computed at query time
	CommentCount int64     `gorm:"->;-:migration" json:"comment_count"`
	Comments     []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
