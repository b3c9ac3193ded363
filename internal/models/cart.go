package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line in a cart. Items are identified by the composite
// (ProductID, Size, Color); the same product in a different size or color is
// a separate line.
type CartItem struct {
	ProductID     string  `bson:"productId" json:"id"`
	Name          string  `bson:"name" json:"name"`
	Price         float64 `bson:"price" json:"price"`
	OriginalPrice float64 `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Image         string  `bson:"image" json:"image"`
	Size          string  `bson:"size" json:"size"`
	Color         string  `bson:"color" json:"color"`
	Quantity      int     `bson:"quantity" json:"quantity"`
}

// Matches reports whether the line has the given item identity.
func (i CartItem) Matches(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

// Cart is a document in the carts collection, one per user. Mutations are
// load-modify-save within a single request; concurrent writers are
// last-writer-wins.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userId" json:"-"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AddItem merges the item into the cart: an existing line with the same
// (id, size, color) identity gets its quantity increased, otherwise a new
// line is appended. Quantity 0 defaults to 1.
func (c *Cart) AddItem(item CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for idx := range c.Items {
		if c.Items[idx].Matches(item.ProductID, item.Size, item.Color) {
			c.Items[idx].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of a matching line. A quantity of zero or
// less removes the line. Returns false if no line matches.
func (c *Cart) UpdateQuantity(productID, size, color string, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(productID, size, color)
	}
	for idx := range c.Items {
		if c.Items[idx].Matches(productID, size, color) {
			c.Items[idx].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem deletes the matching line. Returns false if no line matches.
func (c *Cart) RemoveItem(productID, size, color string) bool {
	for idx := range c.Items {
		if c.Items[idx].Matches(productID, size, color) {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity over all lines.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// FavoriteItem is a product snapshot stored on the user document's favorites
// array, keyed by product ID.
type FavoriteItem struct {
	ProductID     string    `bson:"productId" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Price         float64   `bson:"price" json:"price"`
	OriginalPrice float64   `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Images        []string  `bson:"images" json:"images"`
	Colors        []string  `bson:"colors" json:"colors"`
	Category      string    `bson:"category,omitempty" json:"category,omitempty"`
	AddedAt       time.Time `bson:"addedAt" json:"addedDate"`
}
