package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrEmailTaken         = errors.New("email is already in use")
)

type AuthService interface {
	// Login accepts either a username or an email address.
	Login(login, password string) (*models.User, error)
	CurrentUser(id uuid.UUID) (*models.User, error)
	UpdateProfile(id uuid.UUID, req models.UpdateProfileRequest) (*models.User, error)
	CreateUser(user *models.User, password string) error
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) Login(login, password string) (*models.User, error) {
	user, err := s.userRepo.FindByLogin(strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) CurrentUser(id uuid.UUID) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

func (s *authService) UpdateProfile(id uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !strings.EqualFold(email, user.Email) {
			taken, err := s.userRepo.EmailTaken(email, user.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrEmailTaken
			}
		}
		user.Email = email
	}

	if req.NewPassword != "" {
		if !CheckPassword(user.PasswordHash, req.CurrentPassword) {
			return nil, ErrWrongPassword
		}
		hash, err := HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) CreateUser(user *models.User, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Create(user)
}
