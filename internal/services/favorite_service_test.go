package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/nisantasi/storefront/internal/catalog"
	"github.com/nisantasi/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoriteService(t *testing.T) (*FavoriteService, *models.User) {
	t.Helper()

	user := NewTestUser("ayse@example.com", "Ayse Yilmaz")
	user.Favorites = []models.FavoriteItem{}

	mockUsers := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		UpdateFavoritesFunc: func(ctx context.Context, id string, favorites []models.FavoriteItem) error {
			user.Favorites = favorites
			return nil
		},
	}
	products := catalog.NewWithProducts([]models.Product{
		NewTestProduct("1", "Klasik Siyah Babet", 299.99),
		NewTestProduct("2", "Deri Oxford", 449.99),
	})

	svc := NewFavoriteService(mockUsers, products, slog.Default())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, user
}

func TestFavoriteService_Add(t *testing.T) {
	svc, _ := newFavoriteService(t)

	favorites, err := svc.Add(context.Background(), "user123", "1")

	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "1", favorites[0].ProductID)
	assert.Equal(t, "Klasik Siyah Babet", favorites[0].Name)
	assert.False(t, favorites[0].AddedAt.IsZero())
}

func TestFavoriteService_Add_Idempotent(t *testing.T) {
	svc, _ := newFavoriteService(t)

	_, err := svc.Add(context.Background(), "user123", "1")
	require.NoError(t, err)
	favorites, err := svc.Add(context.Background(), "user123", "1")
	require.NoError(t, err)

	assert.Len(t, favorites, 1)
}

func TestFavoriteService_Add_UnknownProduct(t *testing.T) {
	svc, _ := newFavoriteService(t)

	_, err := svc.Add(context.Background(), "user123", "999")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFavoriteService_Remove(t *testing.T) {
	svc, _ := newFavoriteService(t)

	_, err := svc.Add(context.Background(), "user123", "1")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "user123", "2")
	require.NoError(t, err)

	favorites, err := svc.Remove(context.Background(), "user123", "1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "2", favorites[0].ProductID)
}

func TestFavoriteService_Remove_AbsentIsNoop(t *testing.T) {
	svc, _ := newFavoriteService(t)

	favorites, err := svc.Remove(context.Background(), "user123", "1")

	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoriteService_Contains(t *testing.T) {
	svc, _ := newFavoriteService(t)

	_, err := svc.Add(context.Background(), "user123", "1")
	require.NoError(t, err)

	ok, err := svc.Contains(context.Background(), "user123", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Contains(context.Background(), "user123", "2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavoriteService_List_NilFavorites(t *testing.T) {
	user := NewTestUser("ayse@example.com", "Ayse Yilmaz")
	user.Favorites = nil

	mockUsers := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewFavoriteService(mockUsers, catalog.New(), slog.Default())

	favorites, err := svc.List(context.Background(), "user123")

	require.NoError(t, err)
	assert.NotNil(t, favorites)
	assert.Empty(t, favorites)
}
