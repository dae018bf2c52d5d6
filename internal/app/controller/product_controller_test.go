package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductControllerTest(t *testing.T) (*ProductController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	discountRepo := repository.NewDiscountRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	productService := service.NewProductService(productRepo, categoryRepo, discountRepo, reviewRepo)
	productController := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", productController.GetProducts)
	router.GET("/products/:id", productController.GetProductByID)

	return productController, router, testDB
}

func seedCatalog(t *testing.T, testDB *gorm.DB) (*model.Category, []*model.Product) {
	category := &model.Category{Name: "Elektronik"}
	require.NoError(t, testDB.Create(category).Error)

	products := []*model.Product{
		{Name: "Power Bank", Price: 150000, StockQuantity: 10, CategoryID: category.ID},
		{Name: "Kipas Angin Mini", Price: 85000, StockQuantity: 5, CategoryID: category.ID},
		{Name: "Lampu Tidur", Price: 45000, StockQuantity: 3, CategoryID: category.ID},
	}
	for _, p := range products {
		require.NoError(t, testDB.Create(p).Error)
	}

	discount := &model.Discount{
		ProductID:  products[0].ID,
		Name:       "Flash Sale",
		Percentage: 20,
		StartDate:  time.Now().Add(-time.Hour),
		EndDate:    time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, testDB.Create(discount).Error)

	// An expired discount must not count as discounted.
	expired := &model.Discount{
		ProductID:  products[1].ID,
		Name:       "Promo Lama",
		Percentage: 50,
		StartDate:  time.Now().Add(-48 * time.Hour),
		EndDate:    time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, testDB.Create(expired).Error)

	return category, products
}

func TestProductController_GetProducts(t *testing.T) {
	_, router, testDB := setupProductControllerTest(t)
	seedCatalog(t, testDB)

	t.Run("All", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Products []service.ProductDetail `json:"products"`
			Count    int                     `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Count)
	})

	t.Run("Search", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?search=kipas", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp struct {
			Products []service.ProductDetail `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Kipas Angin Mini", resp.Products[0].Name)
	})

	t.Run("DiscountedOnly", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?discount=true", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp struct {
			Products []service.ProductDetail `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Power Bank", resp.Products[0].Name)
		assert.Equal(t, 120000.0, resp.Products[0].EffectivePrice)
	})

	t.Run("NotDiscounted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?discount=false", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp struct {
			Products []service.ProductDetail `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Products, 2)
		for _, p := range resp.Products {
			assert.NotEqual(t, "Power Bank", p.Name)
		}
	})

	t.Run("PriceRange", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?min_price=50000&max_price=100000", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp struct {
			Products []service.ProductDetail `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Kipas Angin Mini", resp.Products[0].Name)
	})

	t.Run("SortByPriceAscending", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?sort_by=price&order=asc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp struct {
			Products []service.ProductDetail `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Products, 3)
		assert.Equal(t, "Lampu Tidur", resp.Products[0].Name)
	})
}

func TestProductController_GetProductByID(t *testing.T) {
	_, router, testDB := setupProductControllerTest(t)
	_, products := seedCatalog(t, testDB)

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Product service.ProductDetail `json:"product"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, products[0].Name, resp.Product.Name)
		assert.Equal(t, 120000.0, resp.Product.EffectivePrice)
		assert.Equal(t, 20.0, resp.Product.DiscountPercentage)
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
	})

	t.Run("InvalidID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
