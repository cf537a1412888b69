package impl

import (
	"context"
	"log/slog"
	"strings"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/domain/service"
	"cardlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type userService struct {
	userRepo       repository.UserRepository
	passwordHasher service.PasswordHasher
	tokenService   service.TokenService
	logger         *slog.Logger
}

// NewUserService creates a new identity service instance.
func NewUserService(
	userRepo repository.UserRepository,
	passwordHasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		tokenService:   tokenService,
		logger:         logger,
	}
}

// Register creates a user with a hashed password.
func (s *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	email, valid := normalizeEmail(input.Email)
	if !valid || email == "" {
		return nil, domainerrors.ErrInvalidEmailFormat
	}
	if input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password is required")
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Name:  strings.TrimSpace(input.Name),
		Email: email,
	}

	if err := s.userRepo.Create(ctx, user, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password collapse into one error so login probing stays blind.
func (s *userService) Login(ctx context.Context, input usecase.LoginInput) (*entity.User, *usecase.AuthTokens, error) {
	email, valid := normalizeEmail(input.Email)
	if !valid || email == "" {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}

	account, err := s.userRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, nil, domainerrors.ErrInvalidCredentials
		}

		return nil, nil, errors.Wrap(err, "failed to load account")
	}

	if !s.passwordHasher.Check(input.Password, account.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(ctx, account.UserID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load user")
	}

	access, refresh, err := s.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to issue tokens")
	}

	return user, &usecase.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// Me retrieves the authenticated user's profile.
func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}
