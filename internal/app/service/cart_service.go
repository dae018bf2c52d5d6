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
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

// CartLine is one resolved cart row: the stored item plus pricing computed
// against the current catalog.
type CartLine struct {
	model.CartItem
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type CartView struct {
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

type CartService interface {
	GetCart(userID uint) (*CartView, error)
	AddToCart(userID, productID uint, quantity int) (*model.CartItem, error)
	UpdateQuantity(userID, cartItemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart resolves the stored cart against the current catalog. Lines whose
// product has been removed are dropped from the view and from storage.
func (s *cartService) GetCart(userID uint) (*CartView, error) {
	logger.Debug("Fetching cart", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	now := time.Now()
	view := &CartView{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		if item.Product.ID == 0 {
			logger.Warn("Dropping cart line for removed product", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": item.ID,
				"product_id":   item.ProductID,
			})
			if err := s.cartRepo.Delete(item.ID); err != nil {
				return nil, err
			}
			continue
		}

		unitPrice := item.Product.EffectivePrice(now)
		line := CartLine{
			CartItem:  item,
			UnitPrice: unitPrice,
			LineTotal: unitPrice * float64(item.Quantity),
		}
		view.Items = append(view.Items, line)
		view.Subtotal += line.LineTotal
	}

	logger.Info("Cart fetched successfully", map[string]interface{}{
		"user_id":  userID,
		"count":    len(view.Items),
		"subtotal": view.Subtotal,
	})
	return view, nil
}

// AddToCart accumulates quantity when the product is already in the cart.
func (s *cartService) AddToCart(userID, productID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found when adding to cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if product.StockQuantity < newQuantity {
		logger.Warn("Insufficient stock when adding to cart", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"requested":  newQuantity,
			"available":  product.StockQuantity,
		})
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		existing.Quantity = newQuantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		logger.Error("Failed to add product to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Product added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
	})
	return item, nil
}

func (s *cartService) UpdateQuantity(userID, cartItemID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.StockQuantity < quantity {
		logger.Warn("Insufficient stock when updating cart item", map[string]interface{}{
			"user_id":    userID,
			"product_id": item.ProductID,
			"requested":  quantity,
			"available":  product.StockQuantity,
		})
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, cartItemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	item, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.cartRepo.DeleteByUser(userID)
}

// findOwnedItem looks the item up through the user's own cart so one user
// can never touch another user's lines.
func (s *cartService) findOwnedItem(userID, cartItemID uint) (*model.CartItem, error) {
	items, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == cartItemID {
			return &items[i], nil
		}
	}
	logger.Warn("Cart item not found", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})
	return nil, ErrCartItemNotFound
}
