package catalog

import (
	"testing"

	"github.com/nisantasi/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewWithProducts([]models.Product{
		{ID: "1", Name: "Klasik Siyah Babet", Category: "babet", Price: 899.90, OriginalPrice: 1199.90, Sizes: []string{"36", "37", "38"}, InStock: true, Rating: 4.5, ReviewCount: 127},
		{ID: "2", Name: "Beyaz Minimal Babet", Category: "babet", Price: 799.90, Sizes: []string{"35", "36"}, InStock: true, IsNew: true, Rating: 4.8, ReviewCount: 89},
		{ID: "3", Name: "Siyah Oxford", Category: "oxford", Price: 1599.90, Sizes: []string{"40", "41"}, InStock: false, Rating: 4.7, ReviewCount: 156},
		{ID: "4", Name: "Topuklu Ayakkabı", Category: "topuklu", Price: 1299.90, OriginalPrice: 1599.90, Sizes: []string{"37", "38"}, InStock: true, IsNew: true, Rating: 4.9, ReviewCount: 203},
	})
}

func TestCatalog_GetByID(t *testing.T) {
	c := testCatalog()

	p, err := c.GetByID("2")
	require.NoError(t, err)
	assert.Equal(t, "Beyaz Minimal Babet", p.Name)

	_, err = c.GetByID("999")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCatalog_List_CategoryFilter(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{Category: "babet"})

	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, "babet", p.Category)
	}
}

func TestCatalog_List_PriceRange(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{MinPrice: 800, MaxPrice: 1300})

	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "4", products[1].ID)
}

func TestCatalog_List_SizeFilter(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{Sizes: []string{"37"}})

	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "4", products[1].ID)
}

func TestCatalog_List_Flags(t *testing.T) {
	c := testCatalog()

	assert.Len(t, c.List(Filter{InStockOnly: true}), 3)
	assert.Len(t, c.List(Filter{OnSaleOnly: true}), 2)
	assert.Len(t, c.List(Filter{NewOnly: true}), 2)
}

func TestCatalog_List_CombinedFilters(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{Category: "babet", InStockOnly: true, OnSaleOnly: true})

	require.Len(t, products, 1)
	assert.Equal(t, "1", products[0].ID)
}

func TestCatalog_List_SortPriceLow(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{SortBy: SortPriceLow})

	require.Len(t, products, 4)
	assert.Equal(t, "2", products[0].ID)
	assert.Equal(t, "3", products[3].ID)
}

func TestCatalog_List_SortPriceHigh(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{SortBy: SortPriceHigh})

	assert.Equal(t, "3", products[0].ID)
}

func TestCatalog_List_SortRating(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{SortBy: SortRating})

	assert.Equal(t, "4", products[0].ID)
}

func TestCatalog_List_SortPopular(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{SortBy: SortPopular})

	assert.Equal(t, "4", products[0].ID)
	assert.Equal(t, "3", products[1].ID)
}

func TestCatalog_List_DefaultSortKeepsCatalogOrder(t *testing.T) {
	c := testCatalog()

	products := c.List(Filter{})

	require.Len(t, products, 4)
	for i, p := range products {
		assert.Equal(t, c.All()[i].ID, p.ID)
	}
}

func TestCatalog_Search_CaseInsensitive(t *testing.T) {
	c := testCatalog()

	assert.Len(t, c.Search("babet"), 2)
	assert.Len(t, c.Search("BABET"), 2)
	assert.Len(t, c.Search("oxford"), 1)
	assert.Empty(t, c.Search("sandalet"))
}

func TestCatalog_BuiltInProducts(t *testing.T) {
	c := New()

	products := c.All()
	require.Len(t, products, 6)

	for category := range Categories {
		assert.NotEmpty(t, c.List(Filter{Category: category}), "category %s should have products", category)
	}
}
