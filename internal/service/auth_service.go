package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	tokenIssuer   = "inkwell-api"
	tokenAudience = "inkwell-client"
)

var errInvalidCredentials = models.NewUnauthorizedError("No active account found with the given credentials")

// AuthConfig configures token issuance.
type AuthConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenPair is the response of a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessToken is the response of a successful refresh.
type AccessToken struct {
	Access string `json:"access"`
}

type tokenClaims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies HS256 JWTs for dashboard principals.
type AuthService struct {
	userRepo repository.UserRepository
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg AuthConfig) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 5 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 24 * time.Hour
	}
	return &AuthService{userRepo: userRepo, cfg: cfg, now: time.Now}
}

// Login checks the credentials and returns a fresh access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, errInvalidCredentials
	}

	access, err := s.sign(user.ID, TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	refresh, err := s.sign(user.ID, TokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
// The principal must still exist.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AccessToken, error) {
	userID, err := s.verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, models.NewUnauthorizedError("Token is invalid or expired")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.NewUnauthorizedError("User not found")
		}
		return nil, err
	}

	access, err := s.sign(userID, TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AccessToken{Access: access}, nil
}

// VerifyAccessToken returns the principal of a valid, unexpired access token.
func (s *AuthService) VerifyAccessToken(token string) (uint, error) {
	return s.verify(token, TokenTypeAccess)
}

func (s *AuthService) sign(userID uint, typ string, ttl time.Duration) (string, error) {
	if s.cfg.Secret == "" {
		return "", errors.New("JWT secret not configured")
	}

	now := s.now()
	claims := tokenClaims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", err
	}
	observability.TokensIssued.WithLabelValues(typ).Inc()
	return signed, nil
}

func (s *AuthService) verify(token, wantType string) (uint, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, err
	}
	if !parsed.Valid {
		return 0, errors.New("token is not valid")
	}
	if claims.Type != wantType {
		return 0, fmt.Errorf("expected %s token, got %q", wantType, claims.Type)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid subject")
	}
	return uint(id), nil
}
