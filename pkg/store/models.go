package store

import (
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/oryxlabs/voiceorder/agent/contract"
)

// productRow mirrors the products table. The curated columns come from the
// POS sync; raw_data holds the untouched source payload for fields the sync
// never backfilled.
type productRow struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID                   string         `bun:"id,pk"`
	BusinessID           string         `bun:"business_id"`
	Name                 string         `bun:"name"`
	NameLocalized        string         `bun:"name_localized"`
	Description          string         `bun:"description"`
	DescriptionLocalized string         `bun:"description_localized"`
	Price                *float64       `bun:"price"`
	BasePrice            float64        `bun:"base_price"`
	ShortCode            string         `bun:"short_code"`
	IsAvailable          *bool          `bun:"is_available"`
	InStock              *bool          `bun:"in_stock"`
	ImageURL             string         `bun:"image_url"`
	Category             string         `bun:"category"`
	CategoryLocalized    string         `bun:"category_localized"`
	UpdatedAt            time.Time      `bun:"updated_at,nullzero"`
	Raw                  map[string]any `bun:"raw_data,type:jsonb"`
}

func (r *productRow) toProduct() contractx.Product {
	updatedAt := ""
	if !r.UpdatedAt.IsZero() {
		updatedAt = r.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return contractx.Product{
		ID:                   r.ID,
		BusinessID:           r.BusinessID,
		Name:                 r.Name,
		NameLocalized:        r.NameLocalized,
		Description:          r.Description,
		DescriptionLocalized: r.DescriptionLocalized,
		Price:                r.Price,
		BasePrice:            r.BasePrice,
		ShortCode:            r.ShortCode,
		IsAvailable:          r.IsAvailable,
		InStock:              r.InStock,
		ImageURL:             r.ImageURL,
		Category:             r.Category,
		CategoryLocalized:    r.CategoryLocalized,
		UpdatedAt:            updatedAt,
		Raw:                  r.Raw,
	}
}

type customerRow struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        string `bun:"id,pk"`
	FirstName string `bun:"first_name"`
	LastName  string `bun:"last_name"`
	Phone     string `bun:"phone"`
}

func (r *customerRow) toCustomer() *contractx.Customer {
	return &contractx.Customer{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}
