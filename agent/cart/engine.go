package cart

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/oryxlabs/voiceorder/agent/contract"
)

// Engine performs all cart mutations. It assumes quantities were validated
// positive upstream at the tool boundary.
type Engine struct {
	catalog contractx.Catalog
}

func NewEngine(catalog contractx.Catalog) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	return &Engine{catalog: catalog}, nil
}

// UpdateParams distinguishes "omitted" from "provided" with pointers:
// a nil Quantity increments an existing line by one, a set Quantity replaces
// it; nil SelectedOptions/SpecialInstructions keep the stored values.
type UpdateParams struct {
	ProductID           string
	Quantity            *int
	SelectedOptions     []Option
	SpecialInstructions *string
	TaxRate             float64
	DiscountAmount      float64
}

// Update adds or updates one line when ProductID is set, then recomputes
// totals. The recompute runs even without a ProductID, so Update doubles as
// a pure totals refresh.
func (e *Engine) Update(ctx context.Context, c *Cart, p UpdateParams) error {
	if c == nil {
		return fmt.Errorf("%w: cart object is required", contractx.ErrInvalidCart)
	}

	if p.ProductID != "" {
		product, err := e.catalog.ProductByID(ctx, p.ProductID)
		if err != nil {
			return fmt.Errorf("%w: fetch product %s: %v", contractx.ErrCatalogUnavailable, p.ProductID, err)
		}
		if product == nil || !product.Available() {
			return fmt.Errorf("%w: product %s", contractx.ErrProductUnavailable, p.ProductID)
		}

		if existing := c.Find(p.ProductID); existing != nil {
			if p.Quantity != nil {
				existing.Quantity = *p.Quantity
			} else {
				existing.Quantity++
			}
			if p.SelectedOptions != nil {
				existing.SelectedOptions = p.SelectedOptions
			}
			if p.SpecialInstructions != nil {
				existing.SpecialInstructions = *p.SpecialInstructions
			}
			existing.TotalPrice = float64(existing.Quantity) * existing.UnitPrice
		} else {
			qty := 1
			if p.Quantity != nil {
				qty = *p.Quantity
			}
			item := Item{
				ProductID:       p.ProductID,
				Name:            product.Name,
				Quantity:        qty,
				UnitPrice:       product.BasePrice,
				TotalPrice:      float64(qty) * product.BasePrice,
				SelectedOptions: []Option{},
			}
			if p.SelectedOptions != nil {
				item.SelectedOptions = p.SelectedOptions
			}
			if p.SpecialInstructions != nil {
				item.SpecialInstructions = *p.SpecialInstructions
			}
			c.Items = append(c.Items, item)
		}
	}

	subtotal := 0.0
	for i := range c.Items {
		subtotal += c.Items[i].TotalPrice
	}
	c.Subtotal = subtotal
	c.DiscountAmount = p.DiscountAmount
	c.TaxAmount = roundMoney(subtotal * p.TaxRate)
	c.TotalAmount = roundMoney(subtotal + c.TaxAmount - c.DiscountAmount)
	return nil
}
