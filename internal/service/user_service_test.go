package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateUser(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{
		Email:    "  Editor@Example.com ",
		Username: "editor",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", user.Email)
	assert.NotEqual(t, "s3cret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))

	_, err = svc.CreateUser(ctx, CreateUserInput{
		Email:    "EDITOR@example.com",
		Username: "other",
		Password: "x",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "email")
}

func TestUserService_CreateUserValidation(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Email: "not-an-email", Password: ""})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "username")
	assert.Contains(t, appErr.Fields, "password")
}

func TestUserService_SetStaff(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	user := testutil.CreateUser(t, db, "staffer@example.com")

	updated, err := svc.SetStaff(context.Background(), user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsStaff)

	reloaded, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsStaff)
}

func TestUserService_DeleteUserRemovesContent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	gone := testutil.CreateUser(t, db, "gone@example.com")
	stays := testutil.CreateUser(t, db, "stays@example.com")
	doomed := testutil.CreatePost(t, db, gone, "doomed", true)
	kept := testutil.CreatePost(t, db, stays, "kept", true)
	testutil.CreateComment(t, db, doomed, stays, "on doomed post")
	testutil.CreateComment(t, db, kept, gone, "by deleted user")
	testutil.CreateComment(t, db, kept, stays, "survivor")

	require.NoError(t, svc.DeleteUser(context.Background(), gone.ID))

	var posts, comments int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(1), posts)
	assert.Equal(t, int64(1), comments)

	_, err := svc.GetUser(context.Background(), gone.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserService_CreateUserReusingDeletedEmail(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	gone, err := svc.CreateUser(ctx, CreateUserInput{Email: "gone@example.com", Username: "gone", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUser(ctx, gone.ID))

	_, err = svc.CreateUser(ctx, CreateUserInput{Email: "Gone@example.com", Username: "again", Password: "pw"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "email")
}
