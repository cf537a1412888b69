package postgres

import (
	"context"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindAccountByEmail retrieves the credential account for an email address.
func (repo *userRepository) FindAccountByEmail(ctx context.Context, email string) (*repository.Account, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return &repository.Account{
		UserID:       userM.ID,
		Email:        userM.Email,
		PasswordHash: userM.PasswordHash,
	}, nil
}

// Create persists a new user together with their credential account.
func (repo *userRepository) Create(ctx context.Context, user *entity.User, passwordHash string) error {
	userM := fromUserDomain(user)
	userM.PasswordHash = passwordHash

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		Name:          data.Name,
		Email:         data.Email,
		PhoneNumber:   data.PhoneNumber,
		EmailVerified: data.EmailVerified,
		PhoneVerified: data.PhoneVerified,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		Name:          data.Name,
		Email:         data.Email,
		PhoneNumber:   data.PhoneNumber,
		EmailVerified: data.EmailVerified,
		PhoneVerified: data.PhoneVerified,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
