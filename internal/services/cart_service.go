package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nisantasi/storefront/internal/models"
)

// CartStore is the persistence boundary for carts.
type CartStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID string) error
}

// ProductFinder resolves catalog products for cart line snapshots.
type ProductFinder interface {
	GetByID(id string) (*models.Product, error)
}

// CartService handles cart business logic. Each mutation is a load-modify-save
// of the user's cart document.
type CartService struct {
	carts    CartStore
	products ProductFinder
	logger   *slog.Logger
}

// NewCartService creates a new CartService.
func NewCartService(carts CartStore, products ProductFinder, logger *slog.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// Get returns the user's cart, empty if they have none yet.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load cart", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return cart, nil
}

// AddItem merges a catalog product into the cart. The product snapshot
// (name, price, image) is taken from the catalog, not trusted from the
// client. Lines are keyed by (product, size, color).
func (s *CartService) AddItem(ctx context.Context, userID, productID, size, color string, quantity int) (*models.Cart, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, models.ErrInternalServer
	}
	if !product.InStock {
		return nil, models.ErrBadRequest
	}
	if size != "" && !contains(product.Sizes, size) {
		return nil, models.ErrBadRequest
	}
	if color != "" && !contains(product.Colors, color) {
		return nil, models.ErrBadRequest
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load cart", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	cart.AddItem(models.CartItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Image:         image,
		Size:          size,
		Color:         color,
		Quantity:      quantity,
	})

	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("failed to save cart", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, size, color string, quantity int) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load cart", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !cart.UpdateQuantity(productID, size, color, quantity) && quantity > 0 {
		return nil, models.ErrNotFound
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("failed to save cart", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return cart, nil
}

// RemoveItem deletes a line from the cart. Removing an absent line is not an
// error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID, size, color string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load cart", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	cart.RemoveItem(productID, size, color)

	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error("failed to save cart", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return cart, nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.Delete(ctx, userID); err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to clear cart", slog.String("user_id", userID), slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
