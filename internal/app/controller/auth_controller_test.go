package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-secret", time.Hour, 24*time.Hour)
	authController := NewAuthController(authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/register", authController.Register)
	router.POST("/auth/login", authController.Login)

	return authController, router
}

func registerTestUser(t *testing.T, router *gin.Engine) {
	body, _ := json.Marshal(RegisterRequest{
		Email:    "budi@example.com",
		Password: "rahasia123",
		Name:     "Budi Santoso",
		Phone:    "081234567890",
		Address:  "Jl. Merdeka No. 1, Jakarta",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthController_Register(t *testing.T) {
	_, router := setupAuthControllerTest(t)

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(RegisterRequest{
			Email:    "siti@example.com",
			Password: "rahasia123",
			Name:     "Siti Aminah",
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp, "user")
		assert.Contains(t, resp, "tokens")
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		registerTestUser(t, router)

		body, _ := json.Marshal(RegisterRequest{
			Email:    "budi@example.com",
			Password: "rahasia123",
			Name:     "Budi Kedua",
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_EMAIL_EXISTS")
	})

	t.Run("ShortPassword", func(t *testing.T) {
		body, _ := json.Marshal(RegisterRequest{
			Email:    "pendek@example.com",
			Password: "pendek",
			Name:     "Pendek",
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		body, _ := json.Marshal(RegisterRequest{
			Email:    "bukan-email",
			Password: "rahasia123",
			Name:     "Budi",
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	_, router := setupAuthControllerTest(t)
	registerTestUser(t, router)

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(LoginRequest{
			Email:    "budi@example.com",
			Password: "rahasia123",
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		body, _ := json.Marshal(LoginRequest{
			Email:    "budi@example.com",
			Password: "salah-sandi",
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		body, _ := json.Marshal(LoginRequest{
			Email:    "tidakada@example.com",
			Password: "rahasia123",
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
