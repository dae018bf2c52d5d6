package service

import (
	"testing"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	discountRepo := repository.NewDiscountRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	return NewProductService(productRepo, categoryRepo, discountRepo, reviewRepo), testDB
}

func TestProductService_CreateProduct(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)

	category := &model.Category{Name: "Elektronik"}
	require.NoError(t, testDB.Create(category).Error)

	t.Run("Success", func(t *testing.T) {
		product, err := productService.CreateProduct(ProductInput{
			Name:          "Televisi 43 inci",
			Description:   "Smart TV dengan resolusi 4K",
			Price:         4500000,
			StockQuantity: 7,
			CategoryID:    category.ID,
		})
		require.NoError(t, err)
		assert.NotZero(t, product.ID)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		_, err := productService.CreateProduct(ProductInput{
			Name:       "Produk Yatim",
			Price:      10000,
			CategoryID: 9999,
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestProductService_ListProducts_EffectivePricing(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)

	category := &model.Category{Name: "Elektronik"}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		Name:          "Kamera Mirrorless",
		Price:         9000000,
		StockQuantity: 3,
		CategoryID:    category.ID,
	}
	require.NoError(t, testDB.Create(product).Error)
	require.NoError(t, testDB.Create(&model.Discount{
		ProductID:  product.ID,
		Name:       "Promo Kamera",
		Percentage: 10,
		StartDate:  time.Now().Add(-time.Hour),
		EndDate:    time.Now().Add(time.Hour),
	}).Error)

	details, err := productService.ListProducts(repository.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 9000000.0, details[0].Price)
	assert.Equal(t, 8100000.0, details[0].EffectivePrice)
	assert.Equal(t, 10.0, details[0].DiscountPercentage)
}

func TestProductService_GetProduct(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)

	category := &model.Category{Name: "Fashion"}
	require.NoError(t, testDB.Create(category).Error)
	product := &model.Product{
		Name:          "Jaket Kulit",
		Price:         800000,
		StockQuantity: 2,
		CategoryID:    category.ID,
	}
	require.NoError(t, testDB.Create(product).Error)

	t.Run("Found", func(t *testing.T) {
		detail, err := productService.GetProduct(product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jaket Kulit", detail.Name)
		assert.Equal(t, 800000.0, detail.EffectivePrice)
		assert.Zero(t, detail.ReviewCount)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := productService.GetProduct(9999)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)

	category := &model.Category{Name: "Rumah Tangga"}
	require.NoError(t, testDB.Create(category).Error)
	product := &model.Product{
		Name:          "Vacuum Cleaner",
		Price:         1200000,
		StockQuantity: 6,
		CategoryID:    category.ID,
	}
	require.NoError(t, testDB.Create(product).Error)

	updated, err := productService.UpdateProduct(product.ID, ProductInput{
		Price:         1100000,
		StockQuantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 1100000.0, updated.Price)
	assert.Equal(t, 4, updated.StockQuantity)
	assert.Equal(t, "Vacuum Cleaner", updated.Name)

	require.NoError(t, productService.DeleteProduct(product.ID))
	assert.ErrorIs(t, productService.DeleteProduct(product.ID), ErrProductNotFound)
}

func TestProductService_Categories(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)

	t.Run("Create", func(t *testing.T) {
		category, err := productService.CreateCategory(CategoryInput{
			Name:        "Olahraga",
			Description: "Perlengkapan olahraga dan outdoor",
		})
		require.NoError(t, err)
		assert.NotZero(t, category.ID)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := productService.CreateCategory(CategoryInput{Name: "Olahraga"})
		assert.ErrorIs(t, err, ErrCategoryNameExists)
	})

	t.Run("Update", func(t *testing.T) {
		var category model.Category
		require.NoError(t, testDB.Where("name = ?", "Olahraga").First(&category).Error)

		updated, err := productService.UpdateCategory(category.ID, CategoryInput{Name: "Olahraga & Outdoor"})
		require.NoError(t, err)
		assert.Equal(t, "Olahraga & Outdoor", updated.Name)
		assert.Equal(t, "Perlengkapan olahraga dan outdoor", updated.Description)
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		assert.ErrorIs(t, productService.DeleteCategory(9999), ErrCategoryNotFound)
	})
}

func TestProductService_Discounts(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)

	category := &model.Category{Name: "Elektronik"}
	require.NoError(t, testDB.Create(category).Error)
	product := &model.Product{
		Name:          "Power Bank",
		Price:         150000,
		StockQuantity: 10,
		CategoryID:    category.ID,
	}
	require.NoError(t, testDB.Create(product).Error)

	now := time.Now()

	t.Run("Create", func(t *testing.T) {
		discount, err := productService.CreateDiscount(product.ID, DiscountInput{
			Name:       "Flash Sale",
			Percentage: 20,
			StartDate:  now,
			EndDate:    now.AddDate(0, 0, 7),
		})
		require.NoError(t, err)
		assert.NotZero(t, discount.ID)

		detail, err := productService.GetProduct(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 120000.0, detail.EffectivePrice)
	})

	t.Run("InvalidPercentage", func(t *testing.T) {
		for _, percentage := range []float64{0, -5, 101} {
			_, err := productService.CreateDiscount(product.ID, DiscountInput{
				Name:       "Salah",
				Percentage: percentage,
				StartDate:  now,
				EndDate:    now.AddDate(0, 0, 7),
			})
			assert.ErrorIs(t, err, ErrInvalidDiscount)
		}
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := productService.CreateDiscount(product.ID, DiscountInput{
			Name:       "Mundur",
			Percentage: 10,
			StartDate:  now,
			EndDate:    now.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, ErrDiscountBadPeriod)
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		_, err := productService.CreateDiscount(9999, DiscountInput{
			Name:       "Hantu",
			Percentage: 10,
			StartDate:  now,
			EndDate:    now.AddDate(0, 0, 7),
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		var discount model.Discount
		require.NoError(t, testDB.Where("product_id = ?", product.ID).First(&discount).Error)

		require.NoError(t, productService.DeleteDiscount(discount.ID))
		assert.ErrorIs(t, productService.DeleteDiscount(discount.ID), ErrDiscountNotFound)

		detail, err := productService.GetProduct(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 150000.0, detail.EffectivePrice)
	})
}
