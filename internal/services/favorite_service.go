package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nisantasi/storefront/internal/models"
)

// FavoriteStore is the persistence boundary for the favorites list, which
// lives on the user document.
type FavoriteStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateFavorites(ctx context.Context, id string, favorites []models.FavoriteItem) error
}

// FavoriteService manages a user's favorites list. Favorites are keyed by
// product ID alone; adding an already-favorited product is a no-op.
type FavoriteService struct {
	users    FavoriteStore
	products ProductFinder
	logger   *slog.Logger
	now      func() time.Time
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(users FavoriteStore, products ProductFinder, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		users:    users,
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns the user's favorites.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]models.FavoriteItem, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to load favorites", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	if user.Favorites == nil {
		return []models.FavoriteItem{}, nil
	}
	return user.Favorites, nil
}

// Add favorites a catalog product. Idempotent.
func (s *FavoriteService) Add(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, models.ErrInternalServer
	}

	favorites, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, f := range favorites {
		if f.ProductID == productID {
			return favorites, nil
		}
	}

	favorites = append(favorites, models.FavoriteItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Images:        product.Images,
		Colors:        product.Colors,
		Category:      product.Category,
		AddedAt:       s.now(),
	})

	if err := s.users.UpdateFavorites(ctx, userID, favorites); err != nil {
		s.logger.Error("failed to save favorites", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return favorites, nil
}

// Remove unfavorites a product. Removing an absent product is not an error.
func (s *FavoriteService) Remove(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error) {
	favorites, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := favorites[:0]
	changed := false
	for _, f := range favorites {
		if f.ProductID == productID {
			changed = true
			continue
		}
		kept = append(kept, f)
	}
	if !changed {
		return favorites, nil
	}

	if err := s.users.UpdateFavorites(ctx, userID, kept); err != nil {
		s.logger.Error("failed to save favorites", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return kept, nil
}

// Contains reports whether the product is in the user's favorites.
func (s *FavoriteService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	favorites, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, f := range favorites {
		if f.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
