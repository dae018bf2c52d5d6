package service

import (
	"errors"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrDiscountNotFound   = errors.New("discount not found")
	ErrInvalidDiscount    = errors.New("discount percentage must be between 0 and 100")
	ErrDiscountBadPeriod  = errors.New("discount end date must be after its start date")
	ErrCategoryNameExists = errors.New("category name already exists")
)

// ProductDetail decorates a catalog product with its computed pricing and
// review aggregates. The stored price never changes; the effective price is
// derived per request.
type ProductDetail struct {
	model.Product
	EffectivePrice     float64 `json:"effective_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	AverageRating      float64 `json:"average_rating"`
	ReviewCount        int64   `json:"review_count"`
}

type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	StockQuantity int
	CategoryID    uint
	ImageURL      string
}

type CategoryInput struct {
	Name        string
	Description string
}

type DiscountInput struct {
	Name       string
	Percentage float64
	StartDate  time.Time
	EndDate    time.Time
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]ProductDetail, error)
	GetProduct(id uint) (*ProductDetail, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
	ListCategories() ([]model.Category, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(id uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(id uint) error
	CreateDiscount(productID uint, input DiscountInput) (*model.Discount, error)
	DeleteDiscount(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	discountRepo repository.DiscountRepository
	reviewRepo   repository.ReviewRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	discountRepo repository.DiscountRepository,
	reviewRepo repository.ReviewRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		discountRepo: discountRepo,
		reviewRepo:   reviewRepo,
	}
}

func decorateProduct(product model.Product, now time.Time) ProductDetail {
	detail := ProductDetail{
		Product:        product,
		EffectivePrice: product.EffectivePrice(now),
	}
	if d := product.BestActiveDiscount(now); d != nil {
		detail.DiscountPercentage = d.Percentage
	}
	return detail
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]ProductDetail, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_id": filter.CategoryID,
		"search":      filter.Search,
	})

	if filter.Now.IsZero() {
		filter.Now = time.Now()
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, err
	}

	details := make([]ProductDetail, 0, len(products))
	for _, p := range products {
		details = append(details, decorateProduct(p, filter.Now))
	}

	logger.Info("Products listed successfully", map[string]interface{}{
		"count": len(details),
	})
	return details, nil
}

func (s *productService) GetProduct(id uint) (*ProductDetail, error) {
	logger.Debug("Fetching product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	detail := decorateProduct(*product, time.Now())

	rating, count, err := s.reviewRepo.AverageRating(id)
	if err != nil {
		logger.Error("Failed to fetch review aggregates", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	detail.AverageRating = rating
	detail.ReviewCount = count

	return &detail, nil
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Category not found for new product", map[string]interface{}{
				"category_id": input.CategoryID,
			})
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &model.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		CategoryID:    input.CategoryID,
		ImageURL:      input.ImageURL,
	}
	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.StockQuantity >= 0 {
		product.StockQuantity = input.StockQuantity
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
	})
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return s.productRepo.Delete(id)
}

func (s *productService) ListCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list categories", err, nil)
		return nil, err
	}
	return categories, nil
}

func (s *productService) CreateCategory(input CategoryInput) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": input.Name,
	})

	if _, err := s.categoryRepo.FindByName(input.Name); err == nil {
		return nil, ErrCategoryNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
	})
	return category, nil
}

func (s *productService) UpdateCategory(id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if input.Name != "" && input.Name != category.Name {
		if _, err := s.categoryRepo.FindByName(input.Name); err == nil {
			return nil, ErrCategoryNameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		category.Name = input.Name
	}
	if input.Description != "" {
		category.Description = input.Description
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *productService) DeleteCategory(id uint) error {
	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})

	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	return s.categoryRepo.Delete(id)
}

func (s *productService) CreateDiscount(productID uint, input DiscountInput) (*model.Discount, error) {
	logger.Info("Creating discount", map[string]interface{}{
		"product_id": productID,
		"name":       input.Name,
		"percentage": input.Percentage,
	})

	if input.Percentage <= 0 || input.Percentage > 100 {
		return nil, ErrInvalidDiscount
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrDiscountBadPeriod
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	discount := &model.Discount{
		ProductID:  productID,
		Name:       input.Name,
		Percentage: input.Percentage,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}
	if err := s.discountRepo.Create(discount); err != nil {
		return nil, err
	}

	logger.Info("Discount created successfully", map[string]interface{}{
		"discount_id": discount.ID,
		"product_id":  productID,
	})
	return discount, nil
}

func (s *productService) DeleteDiscount(id uint) error {
	logger.Info("Deleting discount", map[string]interface{}{
		"discount_id": id,
	})

	if _, err := s.discountRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscountNotFound
		}
		return err
	}

	return s.discountRepo.Delete(id)
}
