package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
)

const duplicateEmailMessage = "A user with that email already exists."

type UserService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
}

type CreateUserInput struct {
	Email    string `validate:"required,email,max=254"`
	Username string `validate:"required,max=150"`
	Password string `validate:"required"`
	Bio      string
	IsStaff  bool
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		validate: validator.New(),
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser registers an account with a bcrypt-hashed password. Emails are unique, case-insensitively.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = "Invalid value (" + fe.Tag() + ")."
			}
			return nil, models.NewFieldValidationError(fields)
		}
		return nil, models.NewInternalError(err)
	}

	taken, err := s.userRepo.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fieldError("email", duplicateEmailMessage)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Username: in.Username,
		Password: hash,
		Bio:      in.Bio,
		IsStaff:  in.IsStaff,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fieldError("email", duplicateEmailMessage)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetStaff(ctx context.Context, id uint, staff bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsStaff = staff
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes the user after removing every post they wrote, every comment
// on those posts and every comment they wrote, atomically.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "DeleteUser",
		attribute.Int64("user.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	return s.userRepo.DeleteCascade(ctx, id)
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
