package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-at-least-32-characters-long"

func newAuthFixture(t *testing.T) (*AuthService, *gorm.DB, *models.User) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	hash, err := HashPassword("user123")
	require.NoError(t, err)
	user := &models.User{Email: "user1@example.com", Username: "user1", Password: hash}
	require.NoError(t, db.Create(user).Error)

	svc := NewAuthService(repository.NewUserRepository(db), AuthConfig{
		Secret:     testSecret,
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	return svc, db, user
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	svc, _, user := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), "USER1@example.com", "user123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	id, err := svc.VerifyAccessToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = svc.VerifyAccessToken(pair.Refresh)
	assert.Error(t, err, "refresh tokens are not accepted as access tokens")
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	for _, tc := range []struct{ email, password string }{
		{"user1@example.com", "wrong"},
		{"nobody@example.com", "user123"},
	} {
		_, err := svc.Login(context.Background(), tc.email, tc.password)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
		assert.Equal(t, "No active account found with the given credentials", appErr.Message)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, db, user := newAuthFixture(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, user.Email, "user123")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	id, err := svc.VerifyAccessToken(refreshed.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = svc.Refresh(ctx, pair.Access)
	assert.Error(t, err, "access tokens cannot be refreshed")

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)
	_, err = svc.Refresh(ctx, pair.Refresh)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)
}

func TestAuthService_AccessTokenExpires(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	pair, err := svc.Login(context.Background(), user.Email, "user123")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(4 * time.Minute) }
	_, err = svc.VerifyAccessToken(pair.Access)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(6 * time.Minute) }
	_, err = svc.VerifyAccessToken(pair.Access)
	assert.Error(t, err)

	_, err = svc.Refresh(context.Background(), pair.Refresh)
	assert.NoError(t, err, "refresh token outlives the access token")
}

func TestAuthService_RejectsForeignTokens(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	claims := jwt.MapClaims{
		"sub": "1",
		"typ": TokenTypeAccess,
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	_, err = svc.VerifyAccessToken(forged)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.VerifyAccessToken(unsigned)
	assert.Error(t, err)

	_, err = svc.VerifyAccessToken("garbage")
	assert.Error(t, err)
}
