package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortName      ProductSort = "name"
)

// ProductFilter narrows the catalog listing. HasDiscount filters on whether
// a product carries at least one discount active at Now; nil means no
// discount filtering at all.
type ProductFilter struct {
	CategoryID    *uint
	MinPrice      *float64
	MaxPrice      *float64
	Search        string
	HasDiscount   *bool
	Now           time.Time
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindAll() ([]model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByIDs(ids []uint) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	Count() (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) baseQuery(now time.Time) *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Discounts", "end_date > ?", now)
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"category_id": product.CategoryID,
		"price":       product.Price,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":        product.Name,
			"category_id": product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Info("Bulk creating products", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	return nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{Now: time.Now()})
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id":  filter.CategoryID,
		"min_price":    filter.MinPrice,
		"max_price":    filter.MaxPrice,
		"search":       filter.Search,
		"has_discount": filter.HasDiscount,
		"sort_by":      filter.SortBy,
		"ascending":    filter.SortAscending,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})

	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	query := r.baseQuery(now)

	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}

	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", strings.ToLower(filter.Search))
		query = query.Where("LOWER(products.name) LIKE ?", like)
	}

	if filter.HasDiscount != nil {
		activeDiscounts := r.db.Table("discounts").
			Select("1").
			Where("discounts.product_id = products.id").
			Where("discounts.end_date > ?", now).
			Where("discounts.deleted_at IS NULL")
		if *filter.HasDiscount {
			query = query.Where("EXISTS (?)", activeDiscounts)
		} else {
			query = query.Where("NOT EXISTS (?)", activeDiscounts)
		}
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.price " + direction)
	case ProductSortName:
		query = query.Order("products.name " + direction)
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category_id": filter.CategoryID,
			"search":      filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.baseQuery(time.Now()).First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

func (r *productRepository) FindByIDs(ids []uint) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var products []model.Product
	if err := r.baseQuery(time.Now()).Where("products.id IN ?", ids).Find(&products).Error; err != nil {
		logger.Error("Failed to find products by IDs in database", err, map[string]interface{}{
			"ids": ids,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product in database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		logger.Error("Failed to count products in database", err, nil)
		return 0, err
	}
	return count, nil
}
