package catalog

import (
	"sort"
	"strings"

	"github.com/nisantasi/storefront/internal/models"
)

// Sort keys accepted by Filter.SortBy.
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
	SortPriceLow  = "priceLow"
	SortPriceHigh = "priceHigh"
	SortRating    = "rating"
	SortPopular   = "popular"
)

// Filter describes one pass over the catalog. Zero values mean "no
// constraint"; MaxPrice of 0 is unbounded.
type Filter struct {
	Category    string
	Query       string
	MinPrice    float64
	MaxPrice    float64
	Sizes       []string
	InStockOnly bool
	OnSaleOnly  bool
	NewOnly     bool
	SortBy      string
}

// Catalog serves the in-memory product list.
type Catalog struct {
	products []models.Product
}

// New returns a catalog backed by the built-in sample products.
func New() *Catalog {
	return &Catalog{products: sampleProducts}
}

// NewWithProducts returns a catalog over the given products. Used by tests.
func NewWithProducts(products []models.Product) *Catalog {
	return &Catalog{products: products}
}

// All returns every product in catalog order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// GetByID returns the product with the given ID.
func (c *Catalog) GetByID(id string) (*models.Product, error) {
	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

// List applies the filter pipeline and then the requested sort. The default
// sort ("relevance") preserves catalog order; all sorts are stable.
func (c *Catalog) List(f Filter) []models.Product {
	filtered := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if matches(p, f) {
			filtered = append(filtered, p)
		}
	}
	sortProducts(filtered, f.SortBy)
	return filtered
}

// Search returns products whose name, description, or category contains the
// query, case-insensitively.
func (c *Catalog) Search(query string) []models.Product {
	return c.List(Filter{Query: query})
}

func matches(p models.Product, f Filter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Query != "" && !matchesQuery(p, f.Query) {
		return false
	}
	if p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if len(f.Sizes) > 0 && !hasAnySize(p.Sizes, f.Sizes) {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	if f.OnSaleOnly && !p.OnSale() {
		return false
	}
	if f.NewOnly && !p.IsNew {
		return false
	}
	return true
}

func matchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func hasAnySize(productSizes, wanted []string) bool {
	for _, w := range wanted {
		for _, s := range productSizes {
			if s == w {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []models.Product, sortBy string) {
	switch sortBy {
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].IsNew && !products[j].IsNew
		})
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ReviewCount > products[j].ReviewCount
		})
	default:
		// relevance: keep catalog order
	}
}
