package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	apperrors "github.com/belanjaku/belanjaku-backend/internal/errors"
	"github.com/belanjaku/belanjaku-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	ImageURL      string  `json:"image_url"`
}

type UpdateProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    uint    `json:"category_id"`
	ImageURL      string  `json:"image_url"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DiscountRequest struct {
	Name       string     `json:"name" binding:"required"`
	Percentage float64    `json:"percentage" binding:"required"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    time.Time  `json:"end_date" binding:"required"`
}

// parseProductFilter reads the catalog query parameters.
func parseProductFilter(c *gin.Context) repository.ProductFilter {
	filter := repository.ProductFilter{
		Search: c.Query("search"),
	}

	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	if raw := c.Query("discount"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.HasDiscount = &v
		}
	}
	if raw := c.Query("sort_by"); raw != "" {
		filter.SortBy = repository.ProductSort(raw)
	}
	if raw := c.Query("order"); raw == "asc" {
		filter.SortAscending = true
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			filter.Limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			filter.Offset = v
		}
	}

	return filter
}

// GetProducts lists the catalog with optional filters
// GET /api/v1/products
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := parseProductFilter(c)
	products, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	log.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns a single product with pricing and review aggregates
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct adds a catalog product (admin)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct modifies a catalog product (admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct removes a catalog product (admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// GetCategories lists all categories
// GET /api/v1/categories
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.productService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// CreateCategory adds a catalog category (admin)
// POST /api/v1/categories
func (ctrl *ProductController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.productService.CreateCategory(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameExists) {
			apperrors.Conflict(c, apperrors.CategoryNameExists, "Category name already exists")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory modifies a catalog category (admin)
// PUT /api/v1/categories/:id
func (ctrl *ProductController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.productService.UpdateCategory(id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryNameExists):
			apperrors.Conflict(c, apperrors.CategoryNameExists, "Category name already exists")
		default:
			log.Error("Failed to update category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory removes a catalog category (admin)
// DELETE /api/v1/categories/:id
func (ctrl *ProductController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	if err := ctrl.productService.DeleteCategory(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted",
	})
}

// CreateDiscount attaches a time-bound discount to a product (admin)
// POST /api/v1/products/:id/discounts
func (ctrl *ProductController) CreateDiscount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Invalid discount data")
		return
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	discount, err := ctrl.productService.CreateDiscount(productID, service.DiscountInput{
		Name:       req.Name,
		Percentage: req.Percentage,
		StartDate:  startDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInvalidDiscount):
			apperrors.BadRequest(c, apperrors.DiscountInvalidPercent, "Discount percentage must be between 0 and 100")
		case errors.Is(err, service.ErrDiscountBadPeriod):
			apperrors.BadRequest(c, apperrors.DiscountInvalidEnd, "Discount end date must be after its start date")
		default:
			log.Error("Failed to create discount", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create discount")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"discount": discount,
	})
}

// DeleteDiscount removes a discount (admin)
// DELETE /api/v1/discounts/:id
func (ctrl *ProductController) DeleteDiscount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid discount ID")
		return
	}

	if err := ctrl.productService.DeleteDiscount(id); err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			apperrors.NotFound(c, apperrors.DiscountNotFound, "Discount not found")
			return
		}
		log.Error("Failed to delete discount", err, map[string]interface{}{
			"discount_id": id,
		})
		apperrors.InternalError(c, "Failed to delete discount")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount deleted",
	})
}
