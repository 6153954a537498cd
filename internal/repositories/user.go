package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-parser/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	// FindByLogin matches either the username or the email address.
	FindByLogin(login string) (*models.User, error)
	EmailTaken(email string, exceptID uuid.UUID) (bool, error)
	Update(user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

func (r *userRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find user: %w", translate(err))
	}
	return &user, nil
}

func (r *userRepository) FindByLogin(login string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? OR LOWER(email) = LOWER(?)", login, login).
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", translate(err))
	}
	return &user, nil
}

func (r *userRepository) EmailTaken(email string, exceptID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) Update(user *models.User) error {
	result := r.db.Model(user).
		Select("email", "first_name", "last_name", "password_hash", "updated_at").
		Updates(user)

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update user: %w", ErrNotFound)
	}
	return nil
}
