package service

import (
	"errors"

	"github.com/belanjaku/belanjaku-backend/internal/app/model"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAlreadyInWishlist    = errors.New("product already in wishlist")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

type WishlistService interface {
	GetWishlist(userID uint) ([]model.WishlistItem, error)
	AddToWishlist(userID, productID uint) (*model.WishlistItem, error)
	RemoveFromWishlist(userID, productID uint) error
	ToggleWishlist(userID, productID uint) (added bool, err error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetWishlist(userID uint) ([]model.WishlistItem, error) {
	logger.Debug("Fetching wishlist", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.wishlistRepo.FindByUser(userID)
	if err != nil {
		logger.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (s *wishlistService) AddToWishlist(userID, productID uint) (*model.WishlistItem, error) {
	logger.Info("Adding product to wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, err := s.wishlistRepo.FindByUserAndProduct(userID, productID); err == nil {
		logger.Warn("Product already in wishlist", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, ErrAlreadyInWishlist
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.wishlistRepo.Create(item); err != nil {
		logger.Error("Failed to add product to wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Product added to wishlist", map[string]interface{}{
		"user_id":          userID,
		"wishlist_item_id": item.ID,
	})
	return item, nil
}

func (s *wishlistService) RemoveFromWishlist(userID, productID uint) error {
	logger.Info("Removing product from wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	item, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishlistItemNotFound
		}
		return err
	}
	return s.wishlistRepo.Delete(item.ID)
}

// ToggleWishlist flips membership and reports the resulting state.
func (s *wishlistService) ToggleWishlist(userID, productID uint) (bool, error) {
	_, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err == nil {
		if err := s.RemoveFromWishlist(userID, productID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if _, err := s.AddToWishlist(userID, productID); err != nil {
		return false, err
	}
	return true, nil
}
