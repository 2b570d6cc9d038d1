// Package menu builds and queries the compact per-session menu projection.
// The projection is derived once when the call starts and is read-only for
// the rest of the session.
package menu

import (
	"time"

	contractx "github.com/oryxlabs/voiceorder/agent/contract"
)

// Item is the compact, bilingual menu entry the tools resolve against.
type Item struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name,omitempty"`
	NameLocalized        string   `json:"name_localized,omitempty"`
	Description          string   `json:"description,omitempty"`
	DescriptionLocalized string   `json:"description_localized,omitempty"`
	Price                *float64 `json:"price,omitempty"`
	ShortCode            string   `json:"short_code,omitempty"`
	InStock              bool     `json:"in_stock"`
	ImageURL             string   `json:"image_url,omitempty"`
	Category             string   `json:"category,omitempty"`
	CategoryLocalized    string   `json:"category_localized,omitempty"`
	UpdatedAt            string   `json:"updated_at,omitempty"`
}

// Menu preserves catalog order; Count is fixed at projection time.
type Menu struct {
	Items     []Item    `json:"items"`
	Count     int       `json:"count"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Project converts raw catalog records into a Menu. Per field it prefers the
// curated top-level column and falls back to the raw POS payload; malformed
// or missing values become zero values, never errors. in_stock defaults to
// true when neither source states it.
func Project(products []contractx.Product) *Menu {
	items := make([]Item, 0, len(products))
	for i := range products {
		items = append(items, projectItem(&products[i]))
	}
	return &Menu{
		Items:     items,
		Count:     len(items),
		FetchedAt: time.Now().UTC(),
	}
}

func projectItem(p *contractx.Product) Item {
	item := Item{
		ID:                   p.ID,
		Name:                 fallbackString(p.Name, p.Raw, "name"),
		NameLocalized:        fallbackString(p.NameLocalized, p.Raw, "name_localized"),
		Description:          fallbackString(p.Description, p.Raw, "description"),
		DescriptionLocalized: fallbackString(p.DescriptionLocalized, p.Raw, "description_localized"),
		Price:                fallbackPrice(p.Price, p.Raw),
		ShortCode:            fallbackString(p.ShortCode, p.Raw, "sku"),
		InStock:              projectInStock(p),
		ImageURL:             fallbackString(p.ImageURL, p.Raw, "image"),
		Category:             fallbackString(p.Category, p.Raw, "category"),
		CategoryLocalized:    fallbackString(p.CategoryLocalized, p.Raw, "category_localized"),
		UpdatedAt:            fallbackString(p.UpdatedAt, p.Raw, "updated_at"),
	}
	return item
}

func fallbackString(top string, raw map[string]any, key string) string {
	if top != "" {
		return top
	}
	if raw == nil {
		return ""
	}
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func fallbackPrice(top *float64, raw map[string]any) *float64 {
	if top != nil {
		return top
	}
	if raw == nil {
		return nil
	}
	switch v := raw["price"].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func projectInStock(p *contractx.Product) bool {
	if p.InStock != nil {
		return *p.InStock
	}
	if p.Raw != nil {
		if v, ok := p.Raw["in_stock"].(bool); ok {
			return v
		}
		if v, ok := p.Raw["is_stock_product"].(bool); ok {
			return v
		}
	}
	return true
}
