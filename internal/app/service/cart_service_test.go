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

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Email:        "cart@example.com",
		PasswordHash: "hash",
		Name:         "Budi Santoso",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, testDB.Create(user).Error)

	return cartService, testDB, user
}

func TestCartService_AddToCart(t *testing.T) {
	cartService, testDB, user := setupCartServiceTest(t)
	product := seedProduct(t, testDB, "Teko Listrik", 180000, 5)

	t.Run("NewItem", func(t *testing.T) {
		item, err := cartService.AddToCart(user.ID, product.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("AccumulatesQuantity", func(t *testing.T) {
		item, err := cartService.AddToCart(user.ID, product.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)

		var count int64
		require.NoError(t, testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ExceedsStock", func(t *testing.T) {
		_, err := cartService.AddToCart(user.ID, product.ID, 3)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		_, err := cartService.AddToCart(user.ID, 9999, 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		_, err := cartService.AddToCart(user.ID, product.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestCartService_GetCart(t *testing.T) {
	cartService, testDB, user := setupCartServiceTest(t)

	discounted := seedProduct(t, testDB, "Speaker", 200000, 10)
	require.NoError(t, testDB.Create(&model.Discount{
		ProductID:  discounted.ID,
		Name:       "Diskon Akhir Pekan",
		Percentage: 10,
		StartDate:  time.Now().Add(-time.Hour),
		EndDate:    time.Now().Add(time.Hour),
	}).Error)
	plain := seedProduct(t, testDB, "Kabel HDMI", 50000, 10)

	_, err := cartService.AddToCart(user.ID, discounted.ID, 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, plain.ID, 2)
	require.NoError(t, err)

	view, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	lines := make(map[uint]CartLine, len(view.Items))
	for _, line := range view.Items {
		lines[line.ProductID] = line
	}

	// Discounted line priced at the effective price
	assert.Equal(t, 180000.0, lines[discounted.ID].UnitPrice)
	assert.Equal(t, 180000.0, lines[discounted.ID].LineTotal)
	assert.Equal(t, 50000.0, lines[plain.ID].UnitPrice)
	assert.Equal(t, 100000.0, lines[plain.ID].LineTotal)
	assert.Equal(t, 280000.0, view.Subtotal)
}

func TestCartService_GetCart_DropsRemovedProducts(t *testing.T) {
	cartService, testDB, user := setupCartServiceTest(t)

	kept := seedProduct(t, testDB, "Mouse", 80000, 10)
	removed := seedProduct(t, testDB, "Keyboard", 150000, 10)

	_, err := cartService.AddToCart(user.ID, kept.ID, 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, removed.ID, 1)
	require.NoError(t, err)

	require.NoError(t, testDB.Delete(&model.Product{}, removed.ID).Error)

	view, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, kept.ID, view.Items[0].ProductID)
	assert.Equal(t, 80000.0, view.Subtotal)

	// The stale line is gone from storage too
	var count int64
	require.NoError(t, testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartService, testDB, user := setupCartServiceTest(t)
	product := seedProduct(t, testDB, "Monitor", 1500000, 4)

	item, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	t.Run("Updates", func(t *testing.T) {
		updated, err := cartService.UpdateQuantity(user.ID, item.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Quantity)
	})

	t.Run("ExceedsStock", func(t *testing.T) {
		_, err := cartService.UpdateQuantity(user.ID, item.ID, 5)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("OtherUsersItem", func(t *testing.T) {
		other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Siti", Role: model.RoleCustomer}
		require.NoError(t, testDB.Create(other).Error)

		_, err := cartService.UpdateQuantity(other.ID, item.ID, 1)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		_, err := cartService.UpdateQuantity(user.ID, 9999, 1)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, testDB, user := setupCartServiceTest(t)
	product := seedProduct(t, testDB, "Webcam", 250000, 5)

	item, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, cartService.RemoveItem(user.ID, item.ID))

	err = cartService.RemoveItem(user.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}
