package db

import (
	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Discount{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.ProductReview{},
		&model.WishlistItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the default categories when the table is empty
func Seed() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding default categories...")

	categories := []model.Category{
		{Name: "Elektronik", Description: "Gadget dan perangkat elektronik"},
		{Name: "Fashion", Description: "Pakaian dan aksesoris"},
		{Name: "Makanan & Minuman", Description: "Produk makanan dan minuman"},
		{Name: "Rumah Tangga", Description: "Peralatan rumah tangga"},
		{Name: "Kesehatan & Kecantikan", Description: "Produk kesehatan dan kecantikan"},
	}

	for i := range categories {
		if err := DB.Create(&categories[i]).Error; err != nil {
			logger.Error("Failed to seed category", err, map[string]interface{}{
				"name": categories[i].Name,
			})
			return err
		}
	}

	logger.Info("Default categories seeded successfully", map[string]interface{}{
		"count": len(categories),
	})
	return nil
}
