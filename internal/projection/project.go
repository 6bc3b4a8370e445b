package projection

import "inkwell/internal/models"

// FullUser is the dashboard view of a user, including email and bio.
func FullUser(u *models.User) UserView {
	return UserView{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Bio:        u.Bio,
		DateJoined: u.DateJoined,
	}
}

// PublicUser exposes only the id and display name.
func PublicUser(u *models.User) PublicUserView {
	return PublicUserView{ID: u.ID, Username: u.Username}
}

// FullPostListItem is a dashboard list row; it omits content and comments.
func FullPostListItem(p *models.Post) PostListView {
	return PostListView{
		ID:           p.ID,
		Title:        p.Title,
		Author:       FullUser(&p.Author),
		IsPublished:  p.IsPublished,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PublicPostListItem is a portal list row without publication state or update time.
func PublicPostListItem(p *models.Post) PublicPostListView {
	return PublicPostListView{
		ID:           p.ID,
		Title:        p.Title,
		Author:       PublicUser(&p.Author),
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
}

// FullPostDetail is the dashboard view of a post with its comments.
func FullPostDetail(p *models.Post) PostDetailView {
	comments := make([]CommentView, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, FullComment(&p.Comments[i]))
	}
	return PostDetailView{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Author:      FullUser(&p.Author),
		IsPublished: p.IsPublished,
		Comments:    comments,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PublicPostDetail is the portal view of a published post with its comments.
func PublicPostDetail(p *models.Post) PublicPostDetailView {
	comments := make([]PublicCommentView, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, PublicComment(&p.Comments[i]))
	}
	return PublicPostDetailView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    PublicUser(&p.Author),
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

// FullComment is the dashboard view of a comment, naming the post it belongs to.
func FullComment(c *models.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Post:      c.PostID,
		Author:    FullUser(&c.Author),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// PublicComment omits the post reference and the author's private fields.
func PublicComment(c *models.Comment) PublicCommentView {
	return PublicCommentView{
		ID:        c.ID,
		Author:    PublicUser(&c.Author),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// Map projects every element of items with fn.
func Map[E any, V any](items []*E, fn func(*E) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
