package projection

import "strings"

// PostWrite is the request body for creating or replacing a post.
// Server-assigned fields (id, author, timestamps, comment_count) are not part of it and are ignored.
type PostWrite struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	IsPublished *bool  `json:"is_published,omitempty"`
}

// PostPatch is the request body for a partial post update; absent fields stay unchanged.
type PostPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,min=1,max=200"`
	Content     *string `json:"content,omitempty" validate:"omitnil,min=1"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

// CommentCreate is the request body for creating a comment.
type CommentCreate struct {
	Post    *uint  `json:"post" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (p *PostWrite) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
}

func (p *PostPatch) normalize() {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
	}
	if p.Content != nil {
		c := strings.TrimSpace(*p.Content)
		p.Content = &c
	}
}

func (c *CommentCreate) normalize() {
	c.Content = strings.TrimSpace(c.Content)
}

// DecodePostWrite parses and validates a create/replace body.
func DecodePostWrite(body []byte) (PostWrite, error) {
	var p PostWrite
	if err := decodeStrict(body, &p); err != nil {
		return p, err
	}
	p.normalize()
	return p, validateStruct(&p)
}

// DecodePostPatch parses and validates a partial update body.
func DecodePostPatch(body []byte) (PostPatch, error) {
	var p PostPatch
	if err := decodeStrict(body, &p); err != nil {
		return p, err
	}
	p.normalize()
	return p, validateStruct(&p)
}

// DecodeCommentCreate parses and validates a comment body.
func DecodeCommentCreate(body []byte) (CommentCreate, error) {
	var c CommentCreate
	if err := decodeStrict(body, &c); err != nil {
		return c, err
	}
	c.normalize()
	return c, validateStruct(&c)
}

// TokenObtain is the login body of the token endpoint.
type TokenObtain struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenRefresh is the body of the token refresh endpoint.
type TokenRefresh struct {
	Refresh string `json:"refresh" validate:"required"`
}

// DecodeTokenObtain parses and validates a login body.
func DecodeTokenObtain(body []byte) (TokenObtain, error) {
	var t TokenObtain
	if err := decodeStrict(body, &t); err != nil {
		return t, err
	}
	t.Email = strings.TrimSpace(t.Email)
	return t, validateStruct(&t)
}

// DecodeTokenRefresh parses and validates a refresh body.
func DecodeTokenRefresh(body []byte) (TokenRefresh, error) {
	var t TokenRefresh
	if err := decodeStrict(body, &t); err != nil {
		return t, err
	}
	t.Refresh = strings.TrimSpace(t.Refresh)
	return t, validateStruct(&t)
}
