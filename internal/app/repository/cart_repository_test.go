package repository

import (
	"testing"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)
	return testDB, repo
}

func createTestUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashed",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, testDB *gorm.DB, name string, price float64, stock int) *model.Product {
	t.Helper()
	category := &model.Category{Name: "Kategori " + name}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		CategoryID:    category.ID,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestCartRepository_CreateAndFind(t *testing.T) {
	testDB, repo := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "cart@example.com")
	product := createTestProduct(t, testDB, "Termos", 120000, 10)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.Create(item))
	assert.NotZero(t, item.ID)

	items, err := repo.FindByUser(user.ID)
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Termos", items[0].Product.Name)
}

func TestCartRepository_FindByUserAndProduct(t *testing.T) {
	testDB, repo := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "cart@example.com")
	product := createTestProduct(t, testDB, "Panci", 90000, 5)

	require.NoError(t, repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}))

	t.Run("Found", func(t *testing.T) {
		item, err := repo.FindByUserAndProduct(user.ID, product.ID)
		assert.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.FindByUserAndProduct(user.ID, 9999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestCartRepository_DeleteByUser(t *testing.T) {
	testDB, repo := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "cart@example.com")
	other := createTestUser(t, testDB, "other@example.com")
	product := createTestProduct(t, testDB, "Gelas", 25000, 50)

	require.NoError(t, repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 3}))
	require.NoError(t, repo.Create(&model.CartItem{UserID: other.ID, ProductID: product.ID, Quantity: 1}))

	require.NoError(t, repo.DeleteByUser(user.ID))

	items, err := repo.FindByUser(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, items)

	otherItems, err := repo.FindByUser(other.ID)
	assert.NoError(t, err)
	assert.Len(t, otherItems, 1)
}

func TestCartRepository_ReAddAfterDelete(t *testing.T) {
	testDB, repo := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "cart@example.com")
	product := createTestProduct(t, testDB, "Sendok", 15000, 100)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.Create(item))
	require.NoError(t, repo.Delete(item.ID))

	// The unique (user, product) pair must be reusable after removal
	err := repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	assert.NoError(t, err)
}
