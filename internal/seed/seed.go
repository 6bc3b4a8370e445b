// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Demo accounts created by Demo.
const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin123"
	UserPassword  = "user123"
)

type demoPost struct {
	author    int
	title     string
	content   string
	published bool
	comments  []demoComment
}

type demoComment struct {
	author  int
	content string
}

var demoUsers = []struct {
	email, username, password, bio string
	staff                          bool
}{
	{AdminEmail, "admin", AdminPassword, "Site administrator.", true},
	{"user1@example.com", "user1", UserPassword, "Writes about Go and databases.", false},
	{"user2@example.com", "user2", UserPassword, "Occasional reader.", false},
}

var demoPosts = []demoPost{
	{
		author: 0, title: "Welcome to Inkwell", published: true,
		content: "Inkwell keeps a private dashboard for writers and a public portal for readers.",
		comments: []demoComment{{1, "Glad to be here!"}},
	},
	{
		author: 1, title: "Pagination without surprises", published: true,
		content: "Page numbers past the end return an empty page, not an error.",
		comments: []demoComment{{2, "Nice write-up."}},
	},
	{
		author: 1, title: "Draft: notes on projections", published: false,
		content: "Public views are strict subsets of the dashboard views.",
	},
	{
		author: 2, title: "Hello from user2", published: true,
		content: "Still deciding what to write about, so here is a short hello.",
		comments: []demoComment{{1, "Welcome aboard."}},
	},
}

// Result reports what a seeding run created.
type Result struct {
	Users    []*models.User
	Posts    []*models.Post
	Comments int
}

// Demo inserts the fixed demo dataset in one transaction. It is a no-op when the admin account already exists.
func Demo(ctx context.Context, db *gorm.DB) (*Result, error) {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", AdminEmail).First(&existing).Error
	if err == nil {
		middleware.Logger.InfoContext(ctx, "demo data already present, skipping", "email", AdminEmail)
		return &Result{}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	res := &Result{}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, du := range demoUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(du.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u := &models.User{Email: du.email, Username: du.username, Password: string(hash), Bio: du.bio, IsStaff: du.staff}
			if err := tx.Create(u).Error; err != nil {
				return fmt.Errorf("create user %s: %w", du.email, err)
			}
			res.Users = append(res.Users, u)
		}

		for _, dp := range demoPosts {
			p := &models.Post{
				Title:       dp.title,
				Content:     dp.content,
				AuthorID:    res.Users[dp.author].ID,
				IsPublished: dp.published,
			}
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("create post %q: %w", dp.title, err)
			}
			res.Posts = append(res.Posts, p)

			for _, dc := range dp.comments {
				c := &models.Comment{PostID: p.ID, AuthorID: res.Users[dc.author].ID, Content: dc.content}
				if err := tx.Omit("Post", "Author").Create(c).Error; err != nil {
					return fmt.Errorf("create comment: %w", err)
				}
				res.Comments++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "demo data seeded",
		"users", len(res.Users), "posts", len(res.Posts), "comments", res.Comments)
	return res, nil
}

// ClearAll removes every comment, post and user, hard-deleting soft-deleted users too.
func ClearAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Comment{}, &models.Post{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.User{}).Error
	})
}
