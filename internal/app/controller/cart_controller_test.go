package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo)
	cartController := NewCartController(cartService)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Budi Santoso",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, testDB.Create(user).Error)

	category := &model.Category{Name: "Elektronik"}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		Name:          "Power Bank",
		Price:         150000,
		StockQuantity: 10,
		CategoryID:    category.ID,
	}
	require.NoError(t, testDB.Create(product).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, product
}

// Helper function to set user ID in context
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func TestCartController_GetCart(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	require.NoError(t, cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	}))

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cart service.CartView `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 300000.0, resp.Cart.Subtotal)
}

func TestCartController_AddToCart(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 2})
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		body, _ := json.Marshal(AddToCartRequest{ProductID: 9999, Quantity: 1})
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
	})

	t.Run("ExceedsStock", func(t *testing.T) {
		body, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 100})
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCartController_UpdateCartItem(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(item).Error)

	router.PUT("/cart/items/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(UpdateCartItemRequest{Quantity: 4})
		req := httptest.NewRequest(http.MethodPut, "/cart/items/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		body, _ := json.Marshal(UpdateCartItemRequest{Quantity: 1})
		req := httptest.NewRequest(http.MethodPut, "/cart/items/9999", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartController_RemoveCartItem(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, testDB.Create(item).Error)

	router.DELETE("/cart/items/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveCartItem(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/items/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/cart/items/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
