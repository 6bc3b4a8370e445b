// Package testutil provides shared database fixtures for package tests.
package testutil

import (
	"strings"
	"sync"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated in-memory SQLite database private to t.
// The pool is pinned to one connection so every query sees the same in-memory schema.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given email; the username is derived from it.
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Username: usernameFor(email), Password: "not-a-real-hash", Bio: "bio of " + email}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

// CreatePost inserts a post authored by author. Successive calls get strictly increasing created_at.
func CreatePost(t *testing.T, db *gorm.DB, author *models.User, title string, published bool) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:       title,
		Content:     "content of " + title,
		AuthorID:    author.ID,
		IsPublished: published,
		CreatedAt:   nextTimestamp(),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return p
}

// CreateComment inserts a comment on post by author.
func CreateComment(t *testing.T, db *gorm.DB, post *models.Post, author *models.User, content string) *models.Comment {
	t.Helper()
	c := &models.Comment{PostID: post.ID, AuthorID: author.ID, Content: content, CreatedAt: nextTimestamp()}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

var (
	clockMu sync.Mutex
	clock   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func nextTimestamp() time.Time {
	clockMu.Lock()
	defer clockMu.Unlock()
	clock = clock.Add(time.Second)
	return clock
}

func usernameFor(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
