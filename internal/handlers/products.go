package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nisantasi/storefront/internal/catalog"
	"github.com/nisantasi/storefront/internal/models"
	pkghttp "github.com/nisantasi/storefront/pkg/http"
)

// ProductHandler serves the product catalog
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

// ProductListResponse wraps a filtered product listing
type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
}

var validSortKeys = map[string]bool{
	catalog.SortRelevance: true,
	catalog.SortNewest:    true,
	catalog.SortPriceLow:  true,
	catalog.SortPriceHigh: true,
	catalog.SortRating:    true,
	catalog.SortPopular:   true,
}

// ListProducts returns the catalog filtered by query parameters
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	products := h.catalog.List(filter)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ProductListResponse{Products: products, Total: len(products)})
}

// GetProduct returns a single product by ID
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.GetByID(id)
	if err != nil {
		pkghttp.WriteNotFound(w, "Product not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(product)
}

// SearchProducts returns products matching the q parameter
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		pkghttp.WriteBadRequest(w, "Query parameter q is required")
		return
	}

	products := h.catalog.Search(query)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ProductListResponse{Products: products, Total: len(products)})
}

// ListCategories returns the category display metadata
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(catalog.Categories)
}

func parseProductFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()

	filter := catalog.Filter{
		Category: q.Get("category"),
		Query:    strings.TrimSpace(q.Get("q")),
		SortBy:   q.Get("sort"),
	}

	if filter.SortBy != "" && !validSortKeys[filter.SortBy] {
		return filter, errors.New("invalid sort key")
	}

	if raw := q.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filter, errors.New("minPrice must be a non-negative number")
		}
		filter.MinPrice = v
	}
	if raw := q.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filter, errors.New("maxPrice must be a non-negative number")
		}
		filter.MaxPrice = v
	}
	if filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return filter, errors.New("minPrice cannot exceed maxPrice")
	}

	if raw := q.Get("sizes"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Sizes = append(filter.Sizes, s)
			}
		}
	}

	filter.InStockOnly = q.Get("inStock") == "true"
	filter.OnSaleOnly = q.Get("onSale") == "true"
	filter.NewOnly = q.Get("new") == "true"

	return filter, nil
}
