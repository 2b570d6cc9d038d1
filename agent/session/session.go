// Package session owns the state of one live call: one cart, one menu
// projection, one caller. Sessions are single-flight by design; tool calls
// from the dialog engine arrive one at a time, so no internal locking is
// needed. Hosts running several calls give each its own Session.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oryxlabs/voiceorder/agent/cart"
	contractx "github.com/oryxlabs/voiceorder/agent/contract"
	menux "github.com/oryxlabs/voiceorder/agent/menu"
	"github.com/oryxlabs/voiceorder/agent/prompt"
)

// Phase tracks the session state machine. Item mutations loop inside
// PhaseCartReady; session end is an external signal.
type Phase string

const (
	PhaseNoCart    Phase = "no_cart"
	PhaseCartReady Phase = "cart_ready"
	PhaseEnded     Phase = "ended"
)

const defaultGreeting = "السلام عليكم وحياك الله في مطعمنا، معاك خالد من الاستقبال. شلون أقدر أخدمك؟"

// Config is the per-call knobs the host sets before Begin.
type Config struct {
	LocationID     string  `envconfig:"LOCATION_ID" split_words:"true" required:"true"`
	BusinessKey    string  `envconfig:"BUSINESS_KEY" split_words:"true" required:"true"`
	TaxRate        float64 `envconfig:"TAX_RATE" split_words:"true" default:"0"`
	MenuSummaryTop int     `envconfig:"MENU_SUMMARY_TOP" split_words:"true" default:"3"`
	Currency       string  `envconfig:"CURRENCY" split_words:"true" default:""`
}

// Session is one call's order state.
type Session struct {
	ID   string
	Info contractx.SessionInfo

	cfg       Config
	catalog   contractx.Catalog
	customers contractx.CustomerDirectory

	customer *contractx.Customer
	menu     *menux.Menu
	cart     *cart.Cart
	phase    Phase
}

func New(cfg Config, info contractx.SessionInfo, catalog contractx.Catalog, customers contractx.CustomerDirectory) (*Session, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if strings.TrimSpace(cfg.LocationID) == "" {
		return nil, errors.New("location id is required")
	}
	if strings.TrimSpace(cfg.BusinessKey) == "" {
		return nil, errors.New("business key is required")
	}
	return &Session{
		ID:        uuid.NewString(),
		Info:      info,
		cfg:       cfg,
		catalog:   catalog,
		customers: customers,
		phase:     PhaseNoCart,
	}, nil
}

// Begin runs session start: caller lookup, menu projection, cart creation.
// A failed customer lookup is tolerated (the greeting stays generic); a
// failed product fetch fails the session closed rather than proceeding with
// a partial menu.
func (s *Session) Begin(ctx context.Context) error {
	if s.phase != PhaseNoCart {
		return fmt.Errorf("%w: session already started", contractx.ErrInvalidCart)
	}

	if s.customers != nil && strings.TrimSpace(s.Info.CallerPhone) != "" {
		customer, err := s.customers.CustomerByPhone(ctx, s.Info.CallerPhone)
		if err != nil {
			log.Warn().Err(err).Str("session_id", s.ID).Msg("customer lookup failed, greeting stays generic")
		} else {
			s.customer = customer
		}
	}

	products, err := s.catalog.ProductsForBusiness(ctx, s.cfg.BusinessKey)
	if err != nil {
		return fmt.Errorf("%w: load products: %v", contractx.ErrCatalogUnavailable, err)
	}
	s.menu = menux.Project(products)

	customerID := ""
	if s.customer != nil {
		customerID = s.customer.ID
	}
	s.cart = cart.New(s.cfg.LocationID, customerID)
	s.phase = PhaseCartReady

	log.Info().
		Str("session_id", s.ID).
		Str("room", s.Info.RoomName).
		Int("menu_items", s.menu.Count).
		Bool("known_customer", s.customer != nil).
		Msg("session started")
	return nil
}

// End moves the session to its terminal phase and drops the cart. Nothing is
// persisted; the cart lives only as long as the call.
func (s *Session) End() {
	s.phase = PhaseEnded
	s.cart = nil
	log.Info().Str("session_id", s.ID).Msg("session ended")
}

func (s *Session) Phase() Phase { return s.phase }

// Cart returns the live cart, or nil before Begin / after End.
func (s *Session) Cart() *cart.Cart { return s.cart }

// Menu returns the session's read-only menu projection.
func (s *Session) Menu() *menux.Menu { return s.menu }

func (s *Session) TaxRate() float64 { return s.cfg.TaxRate }

func (s *Session) Currency() string { return s.cfg.Currency }

// Greeting returns the welcome line the agent speaks when the call opens,
// personalized with the caller's first name when the caller is known. Only
// the first name is ever spoken; the rest of the record stays private.
func (s *Session) Greeting() string {
	if s.customer != nil && strings.TrimSpace(s.customer.FirstName) != "" {
		return fmt.Sprintf("أهلاً %s! %s", strings.TrimSpace(s.customer.FirstName), defaultGreeting)
	}
	return defaultGreeting
}

// Instructions renders the dialog-engine system prompt with the menu digest.
func (s *Session) Instructions() string {
	return prompt.Instructions(menux.Summarize(s.menu, s.cfg.MenuSummaryTop, s.cfg.Currency))
}
