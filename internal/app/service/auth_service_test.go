package service

import (
	"testing"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/belanjaku/belanjaku-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("budi@example.com", "rahasia123", "Budi Santoso", "081234567890", "Jl. Merdeka No. 1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, "rahasia123", user.PasswordHash)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, _, err := authService.Register("budi@example.com", "lain123", "Budi Lain", "", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("budi@example.com", "rahasia123", "Budi Santoso", "", "")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		user, tokens, err := authService.Login("budi@example.com", "rahasia123")
		require.NoError(t, err)
		assert.Equal(t, "budi@example.com", user.Email)

		claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, string(model.RoleCustomer), claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := authService.Login("budi@example.com", "salah")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, _, err := authService.Login("tidakada@example.com", "rahasia123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("budi@example.com", "rahasia123", "Budi Santoso", "081234567890", "Jl. Lama")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "Budi S.", "", "Jl. Baru No. 2")
	require.NoError(t, err)
	assert.Equal(t, "Budi S.", updated.Name)
	assert.Equal(t, "081234567890", updated.Phone)
	assert.Equal(t, "Jl. Baru No. 2", updated.Address)

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := authService.UpdateProfile(9999, "X", "", "")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
