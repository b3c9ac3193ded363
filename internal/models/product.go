package models

// Product is a catalog entry. The catalog is static sample data held in
// memory, so products carry no bson tags.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Images        []string `json:"images"`
	Colors        []string `json:"colors"`
	Category      string   `json:"category"`
	Sizes         []string `json:"sizes"`
	Description   string   `json:"description,omitempty"`
	InStock       bool     `json:"inStock"`
	IsNew         bool     `json:"isNew"`
	Rating        float64  `json:"rating,omitempty"`
	ReviewCount   int      `json:"reviewCount,omitempty"`
}

// OnSale reports whether the product carries a crossed-out original price.
func (p *Product) OnSale() bool {
	return p.OriginalPrice > 0
}
