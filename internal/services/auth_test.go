package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
)

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:           uuid.New(),
		Username:     "recruiter",
		Email:        "recruiter@example.com",
		PasswordHash: hash,
	}
}

func TestLogin_UsernameOrEmail(t *testing.T) {
	user := testUser(t, "s3cret-pass")

	repo := new(MockUserRepository)
	repo.On("FindByLogin", "recruiter").Return(user, nil)
	repo.On("FindByLogin", "recruiter@example.com").Return(user, nil)

	auth := NewAuthService(repo)

	got, err := auth.Login("recruiter", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = auth.Login("  recruiter@example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	user := testUser(t, "s3cret-pass")

	repo := new(MockUserRepository)
	repo.On("FindByLogin", "recruiter").Return(user, nil)
	repo.On("FindByLogin", "ghost").Return(nil, fmt.Errorf("failed to find user: %w", repositories.ErrNotFound))

	auth := NewAuthService(repo)

	_, err := auth.Login("recruiter", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("ghost", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_ChangesPasswordWithCurrentPassword(t *testing.T) {
	user := testUser(t, "old-password")

	repo := new(MockUserRepository)
	repo.On("FindByID", user.ID).Return(user, nil)
	repo.On("Update", mock.Anything).Return(nil)

	first := "Ann"
	updated, err := NewAuthService(repo).UpdateProfile(user.ID, models.UpdateProfileRequest{
		FirstName:       &first,
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ann", updated.FirstName)
	assert.True(t, CheckPassword(updated.PasswordHash, "new-password"))
}

func TestUpdateProfile_WrongCurrentPassword(t *testing.T) {
	user := testUser(t, "old-password")

	repo := new(MockUserRepository)
	repo.On("FindByID", user.ID).Return(user, nil)

	_, err := NewAuthService(repo).UpdateProfile(user.ID, models.UpdateProfileRequest{
		CurrentPassword: "guess",
		NewPassword:     "new-password",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	user := testUser(t, "old-password")
	email := "taken@example.com"

	repo := new(MockUserRepository)
	repo.On("FindByID", user.ID).Return(user, nil)
	repo.On("EmailTaken", email, user.ID).Return(true, nil)

	_, err := NewAuthService(repo).UpdateProfile(user.ID, models.UpdateProfileRequest{Email: &email})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything).Return(nil)

	user := &models.User{Username: "jane", Email: "jane@example.com"}
	require.NoError(t, NewAuthService(repo).CreateUser(user, "long-enough"))

	assert.NotEqual(t, "long-enough", user.PasswordHash)
	assert.True(t, CheckPassword(user.PasswordHash, "long-enough"))
}
