// Package projection maps domain entities onto the response shapes each API surface exposes.
// Full shapes belong to the dashboard; public shapes belong to the portal and carry a strict
// subset of the corresponding full fields.
package projection

import "time"

// UserView is the dashboard representation of a user.
type UserView struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Bio        string    `json:"bio"`
	DateJoined time.Time `json:"date_joined"`
}

// PublicUserView is the portal representation of a user.
type PublicUserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// PostListView is a post row in a dashboard listing.
type PostListView struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Author       UserView  `json:"author"`
	IsPublished  bool      `json:"is_published"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicPostListView is a post row in a portal listing.
type PublicPostListView struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Author       PublicUserView `json:"author"`
	CommentCount int64          `json:"comment_count"`
	CreatedAt    time.Time      `json:"created_at"`
}

// PostDetailView is a single post on the dashboard, with its comments.
type PostDetailView struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Author      UserView      `json:"author"`
	IsPublished bool          `json:"is_published"`
	Comments    []CommentView `json:"comments"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PublicPostDetailView is a single published post on the portal, with its comments.
type PublicPostDetailView struct {
	ID        uint                `json:"id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Author    PublicUserView      `json:"author"`
	Comments  []PublicCommentView `json:"comments"`
	CreatedAt time.Time           `json:"created_at"`
}

// CommentView is the dashboard representation of a comment.
type CommentView struct {
	ID        uint      `json:"id"`
	Post      uint      `json:"post"`
	Author    UserView  `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicCommentView is the portal representation of a comment.
type PublicCommentView struct {
	ID        uint           `json:"id"`
	Author    PublicUserView `json:"author"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}
