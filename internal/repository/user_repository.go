package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

// UserRepository defines operations for the User model
type UserRepository interface {
	Repository
	FindByEmail(email string) (*models.User, error)
	FindWithRole(id uuid.UUID) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	FindAll(page, pageSize int) ([]*models.User, int64, error)
}

// userRepository implements UserRepository
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

// FindByEmail finds a user by email with their role
func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.DB.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindWithRole finds a user by ID with their role preloaded
func (r *userRepository) FindWithRole(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.DB.Preload("Role").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByUsername checks if a user with the given username exists
func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// FindAll retrieves all users with pagination
func (r *userRepository) FindAll(page, pageSize int) ([]*models.User, int64, error) {
	var users []*models.User
	var count int64

	if err := r.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.DB.Preload("Role").
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}
