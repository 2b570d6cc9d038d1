package contract

import "time"

// Product is the read-only catalog record the core resolves against.
// Top-level columns are the curated projection of the POS sync; Raw keeps the
// untouched source payload so readers can fall back when a column was never
// backfilled.
type Product struct {
	ID                   string         `json:"id"`
	BusinessID           string         `json:"business_id,omitempty"`
	Name                 string         `json:"name,omitempty"`
	NameLocalized        string         `json:"name_localized,omitempty"`
	Description          string         `json:"description,omitempty"`
	DescriptionLocalized string         `json:"description_localized,omitempty"`
	Price                *float64       `json:"price,omitempty"`
	BasePrice            float64        `json:"base_price,omitempty"`
	ShortCode            string         `json:"short_code,omitempty"`
	IsAvailable          *bool          `json:"is_available,omitempty"`
	InStock              *bool          `json:"in_stock,omitempty"`
	ImageURL             string         `json:"image_url,omitempty"`
	Category             string         `json:"category,omitempty"`
	CategoryLocalized    string         `json:"category_localized,omitempty"`
	UpdatedAt            string         `json:"updated_at,omitempty"`
	Raw                  map[string]any `json:"raw_data,omitempty"`
}

// Available reports whether the product may be added to a cart.
// A missing flag means available; only an explicit false disables the product.
func (p *Product) Available() bool {
	if p == nil {
		return false
	}
	return p.IsAvailable == nil || *p.IsAvailable
}

// Customer identifies a known caller. Consumed only to personalize the
// greeting and tag the cart; never echoed verbatim into spoken output.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ToolResult is the unit of contract between a tool invocation and the
// dialog engine. SpokenText is delivered to the caller over the voice
// channel; EngineText goes back to the dialog engine as the tool's reply.
// Either may be empty: a side-effect-only tool sets neither.
type ToolResult struct {
	Tool       string `json:"tool"`
	SpokenText string `json:"spoken_text,omitempty"`
	EngineText string `json:"engine_text,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SessionInfo carries the identifiers captured when the call is answered.
// Room and participant identity are immutable for the life of the session.
type SessionInfo struct {
	RoomName            string    `json:"room_name"`
	ParticipantIdentity string    `json:"participant_identity"`
	LocationID          string    `json:"location_id"`
	CallerPhone         string    `json:"caller_phone,omitempty"`
	AnsweredAt          time.Time `json:"answered_at"`
}
