// Package cart owns the in-memory order state for one call session.
package cart

import "math"

// Option is one selected product option, e.g. {"size": "large"}.
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Item is one cart line. At most one Item per product id exists in a cart;
// UnitPrice is snapshotted when the item is first added and never re-read
// from the catalog.
type Item struct {
	ProductID           string   `json:"product_id"`
	Name                string   `json:"name"`
	Quantity            int      `json:"quantity"`
	UnitPrice           float64  `json:"unit_price"`
	TotalPrice          float64  `json:"total_price"`
	SelectedOptions     []Option `json:"selected_options"`
	SpecialInstructions string   `json:"special_instructions"`
}

// Cart lives in memory for the duration of one call and is discarded when
// the session ends. Totals are always a pure function of Items, the tax
// rate, and the discount; they are recomputed on every update, never
// accumulated.
type Cart struct {
	LocationID     string  `json:"location_id"`
	CustomerID     string  `json:"customer_id,omitempty"`
	Items          []Item  `json:"items"`
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`
}

// New returns an empty cart for the location. customerID may be empty when
// the caller is unknown.
func New(locationID, customerID string) *Cart {
	return &Cart{
		LocationID: locationID,
		CustomerID: customerID,
		Items:      []Item{},
	}
}

// Find returns the cart line for productID, or nil.
func (c *Cart) Find(productID string) *Item {
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
