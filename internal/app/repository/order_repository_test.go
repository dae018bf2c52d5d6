package repository

import (
	"testing"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewOrderRepository(testDB)
	return testDB, repo
}

func createTestOrder(t *testing.T, testDB *gorm.DB, userID uint, number string, status model.OrderStatus, total float64) *model.Order {
	t.Helper()
	order := &model.Order{
		OrderNumber:    number,
		UserID:         userID,
		Status:         status,
		Subtotal:       total - 10000,
		ShippingCost:   10000,
		TotalAmount:    total,
		ShippingMethod: model.ShippingRegular,
		PaymentMethod:  model.PaymentMethodBankTransfer,
		RecipientName:  "Budi Santoso",
		Address:        "Jl. Merdeka No. 1",
		City:           "Jakarta",
		PostalCode:     "10110",
		Phone:          "081234567890",
	}
	require.NoError(t, testDB.Create(order).Error)
	return order
}

func TestOrderRepository_CreateTx(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "order@example.com")
	product := createTestProduct(t, testDB, "Laptop", 7500000, 3)

	order := &model.Order{
		OrderNumber:    "INV-20250101-ABC234",
		UserID:         user.ID,
		Status:         model.OrderStatusPending,
		Subtotal:       7500000,
		ShippingCost:   10000,
		TotalAmount:    7510000,
		ShippingMethod: model.ShippingRegular,
		PaymentMethod:  model.PaymentMethodBankTransfer,
		RecipientName:  "Budi Santoso",
		Address:        "Jl. Merdeka No. 1",
		OrderItems: []model.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, Quantity: 1, Price: 7500000},
		},
	}

	err := testDB.Transaction(func(tx *gorm.DB) error {
		return repo.CreateTx(tx, order)
	})
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)

	found, err := repo.FindByID(order.ID)
	assert.NoError(t, err)
	require.Len(t, found.OrderItems, 1)
	assert.Equal(t, "Laptop", found.OrderItems[0].ProductName)
}

func TestOrderRepository_FindByUserID(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "order@example.com")
	other := createTestUser(t, testDB, "other@example.com")

	createTestOrder(t, testDB, user.ID, "INV-20250101-AAAAAA", model.OrderStatusPending, 100000)
	createTestOrder(t, testDB, user.ID, "INV-20250102-BBBBBB", model.OrderStatusCompleted, 200000)
	createTestOrder(t, testDB, other.ID, "INV-20250103-CCCCCC", model.OrderStatusPending, 300000)

	orders, err := repo.FindByUserID(user.ID)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "order@example.com")
	order := createTestOrder(t, testDB, user.ID, "INV-20250101-AAAAAA", model.OrderStatusPending, 100000)

	t.Run("Updates", func(t *testing.T) {
		err := repo.UpdateStatus(order.ID, model.OrderStatusProcessing)
		assert.NoError(t, err)

		found, err := repo.FindByID(order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusProcessing, found.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		err := repo.UpdateStatus(9999, model.OrderStatusProcessing)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestOrderRepository_FindStalePending(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "order@example.com")
	stale := createTestOrder(t, testDB, user.ID, "INV-20250101-AAAAAA", model.OrderStatusPending, 100000)
	fresh := createTestOrder(t, testDB, user.ID, "INV-20250102-BBBBBB", model.OrderStatusPending, 200000)
	createTestOrder(t, testDB, user.ID, "INV-20250103-CCCCCC", model.OrderStatusCompleted, 300000)

	old := time.Now().Add(-96 * time.Hour)
	require.NoError(t, testDB.Model(&model.Order{}).
		Where("id = ?", stale.ID).
		Update("created_at", old).Error)

	found, err := repo.FindStalePending(time.Now().Add(-72 * time.Hour))
	assert.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stale.ID, found[0].ID)
	assert.NotEqual(t, fresh.ID, found[0].ID)
}

func TestOrderRepository_GetAdminStats(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "customer@example.com")
	admin := &model.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "hashed", Role: model.RoleAdmin}
	require.NoError(t, testDB.Create(admin).Error)

	createTestProduct(t, testDB, "Produk A", 50000, 10)
	createTestOrder(t, testDB, user.ID, "INV-20250101-AAAAAA", model.OrderStatusPending, 100000)
	createTestOrder(t, testDB, user.ID, "INV-20250102-BBBBBB", model.OrderStatusCompleted, 250000)
	createTestOrder(t, testDB, user.ID, "INV-20250103-CCCCCC", model.OrderStatusCompleted, 150000)
	createTestOrder(t, testDB, user.ID, "INV-20250104-DDDDDD", model.OrderStatusCancelled, 999999)

	stats, err := repo.GetAdminStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	// Cancelled orders contribute nothing to revenue
	assert.Equal(t, 400000.0, stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalCustomers)
}

func TestOrderRepository_GetCustomerStats(t *testing.T) {
	testDB, repo := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "customer@example.com")
	other := createTestUser(t, testDB, "other@example.com")

	createTestOrder(t, testDB, user.ID, "INV-20250101-AAAAAA", model.OrderStatusPending, 100000)
	createTestOrder(t, testDB, user.ID, "INV-20250102-BBBBBB", model.OrderStatusProcessing, 200000)
	createTestOrder(t, testDB, user.ID, "INV-20250103-CCCCCC", model.OrderStatusCompleted, 300000)
	createTestOrder(t, testDB, other.ID, "INV-20250104-DDDDDD", model.OrderStatusPending, 400000)

	stats, err := repo.GetCustomerStats(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.ProcessingOrders)
	assert.Equal(t, int64(1), stats.CompletedOrders)
}
