package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CommentCountIsDerived(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	first := testutil.CreatePost(t, db, alice, "first", true)
	second := testutil.CreatePost(t, db, alice, "second", true)
	testutil.CreateComment(t, db, first, bob, "one")
	testutil.CreateComment(t, db, first, bob, "two")
	testutil.CreateComment(t, db, first, alice, "three")

	posts, err := repo.List(ctx, PostFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// Newest first.
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, int64(0), posts[0].CommentCount)
	assert.Equal(t, int64(3), posts[1].CommentCount)
	assert.Equal(t, "alice", posts[1].Author.Username)

	detail, err := repo.GetByID(ctx, first.ID, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.CommentCount)
	require.Len(t, detail.Comments, 3)
	assert.Equal(t, "three", detail.Comments[0].Content)
	assert.Equal(t, "alice", detail.Comments[0].Author.Username)

	// Counts follow deletes without any stored counter.
	var last models.Comment
	require.NoError(t, db.Where("content = ?", "one").First(&last).Error)
	require.NoError(t, NewCommentRepository(db).Delete(ctx, last.ID))
	detail, err = repo.GetByID(ctx, first.ID, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.CommentCount)
}

func TestPostRepository_PublishedOnlyFilter(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "author@example.com")
	published := testutil.CreatePost(t, db, author, "visible", true)
	draft := testutil.CreatePost(t, db, author, "hidden", false)

	public := PostFilter{PublishedOnly: true}

	count, err := repo.Count(ctx, public)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	posts, err := repo.List(ctx, public, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, published.ID, posts[0].ID)

	_, err = repo.GetByID(ctx, draft.ID, public)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	got, err := repo.GetByID(ctx, draft.ID, PostFilter{})
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	count, err = repo.Count(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPostRepository_CreateKeepsUnpublishedFlag(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "author@example.com")

	post := &models.Post{Title: "t", Content: "c", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID, PostFilter{})
	require.NoError(t, err)
	assert.False(t, got.IsPublished)
	assert.Equal(t, author.ID, got.Author.ID)
}

func TestPostRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "author@example.com")
	post := testutil.CreatePost(t, db, author, "draft", false)
	testutil.CreateComment(t, db, post, author, "note")

	require.NoError(t, repo.Update(ctx, post.ID, map[string]interface{}{"is_published": true}))
	got, err := repo.GetByID(ctx, post.ID, PostFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.True(t, got.UpdatedAt.After(post.UpdatedAt) || got.UpdatedAt.Equal(post.UpdatedAt))

	err = repo.Update(ctx, 999, map[string]interface{}{"title": "x"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	require.NoError(t, repo.Delete(ctx, post.ID))
	var comments int64
	db.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, comments, "post delete removes its comments")

	err = repo.Delete(ctx, post.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	doomed := testutil.CreateUser(t, db, "doomed@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")

	doomedPost := testutil.CreatePost(t, db, doomed, "doomed post", true)
	otherPost := testutil.CreatePost(t, db, other, "other post", true)

	testutil.CreateComment(t, db, doomedPost, other, "other on doomed post")
	testutil.CreateComment(t, db, otherPost, doomed, "doomed on other post")
	kept := testutil.CreateComment(t, db, otherPost, other, "other on other post")

	require.NoError(t, users.DeleteCascade(ctx, doomed.ID))

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, otherPost.ID, posts[0].ID)

	var comments []models.Comment
	require.NoError(t, db.Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, kept.ID, comments[0].ID)

	_, err := users.GetByID(ctx, doomed.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// Soft-deleted, not hard-deleted.
	var raw models.User
	require.NoError(t, db.Unscoped().First(&raw, doomed.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)

	err = users.DeleteCascade(ctx, doomed.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_GetByEmailIsCaseInsensitive(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := NewUserRepository(db)
	created := testutil.CreateUser(t, db, "mixed@example.com")

	got, err := users.GetByEmail(context.Background(), "  MIXED@example.com ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUserRepository_EmailTakenCountsSoftDeleted(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	taken, err := users.EmailTaken(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	ghost := testutil.CreateUser(t, db, "ghost@example.com")
	require.NoError(t, users.DeleteCascade(ctx, ghost.ID))

	taken, err = users.EmailTaken(ctx, " GHOST@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	err = users.Create(ctx, &models.User{Email: "ghost@example.com", Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}
