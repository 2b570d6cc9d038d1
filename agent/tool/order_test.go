package tool

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/oryxlabs/voiceorder/agent/cart"
	contractx "github.com/oryxlabs/voiceorder/agent/contract"
	sessionx "github.com/oryxlabs/voiceorder/agent/session"
)

type fakeCatalog struct {
	products []contractx.Product
	byIDErr  error
}

func (f *fakeCatalog) ProductsForBusiness(ctx context.Context, businessKey string) ([]contractx.Product, error) {
	return f.products, nil
}

func (f *fakeCatalog) ProductByID(ctx context.Context, id string) (*contractx.Product, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	for i := range f.products {
		p := &f.products[i]
		if p.ID == id && p.Available() {
			return p, nil
		}
	}
	return nil, nil
}

func price(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func testProducts() []contractx.Product {
	return []contractx.Product{
		{ID: "P1", Name: "Koshari", BasePrice: 3.00, Price: price(3.00), Description: "lentils and rice", Category: "Mains", ShortCode: "KSH"},
		{ID: "P2", Name: "Shish Tawook", BasePrice: 4.25, Price: price(4.25), Description: "grilled chicken skewers", Category: "Mains"},
		{ID: "P3", Name: "Retired Dish", BasePrice: 9.99, IsAvailable: boolPtr(false)},
	}
}

func newTestDeps(t *testing.T, catalog *fakeCatalog) Deps {
	t.Helper()

	sess, err := sessionx.New(
		sessionx.Config{LocationID: "L1", BusinessKey: "B1"},
		contractx.SessionInfo{RoomName: "room-1", ParticipantIdentity: "caller-1", AnsweredAt: time.Now()},
		catalog, nil,
	)
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	if err := sess.Begin(context.Background()); err != nil {
		t.Fatalf("session.Begin() error = %v", err)
	}

	engine, err := cart.NewEngine(catalog)
	if err != nil {
		t.Fatalf("cart.NewEngine() error = %v", err)
	}
	return Deps{Session: sess, Engine: engine}
}

func cloneCart(t *testing.T, c *cart.Cart) *cart.Cart {
	t.Helper()
	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal cart: %v", err)
	}
	var out cart.Cart
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal cart: %v", err)
	}
	return &out
}

func TestAddToCartConfirmsNameQuantityAndTotal(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), ToolAddToCart, map[string]any{
		"product_id": "P1",
		"quantity":   float64(2), // JSON numbers arrive as float64
	})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	for _, want := range []string{"Koshari", "2", "6.00"} {
		if !strings.Contains(out.EngineText, want) {
			t.Fatalf("EngineText = %q, missing %q", out.EngineText, want)
		}
	}
	if deps.Session.Cart().TotalAmount != 6.00 {
		t.Fatalf("TotalAmount = %v, want 6.00", deps.Session.Cart().TotalAmount)
	}
}

func TestAddToCartRejectsNonPositiveQuantityWithoutMutation(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)
	before := cloneCart(t, deps.Session.Cart())

	for _, qty := range []float64{0, -1} {
		out, err := executor(context.Background(), ToolAddToCart, map[string]any{
			"product_id": "P1",
			"quantity":   qty,
		})
		if err != nil {
			t.Fatalf("executor error = %v", err)
		}
		if out.EngineText == "" {
			t.Fatalf("quantity=%v: expected a rejection string", qty)
		}
		if !reflect.DeepEqual(cloneCart(t, deps.Session.Cart()), before) {
			t.Fatalf("quantity=%v: cart mutated by rejected call", qty)
		}
	}
}

func TestAddToCartResolvesShortCodes(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), ToolAddToCart, map[string]any{"product_id": "ksh"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if !strings.Contains(out.EngineText, "Koshari") {
		t.Fatalf("EngineText = %q, want the short code resolved to the item", out.EngineText)
	}
	if item := deps.Session.Cart().Find("P1"); item == nil {
		t.Fatal("cart line keyed by product id is missing")
	}
}

func TestAddToCartRejectsMissingProductID(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), ToolAddToCart, map[string]any{"quantity": float64(1)})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.EngineText == "" {
		t.Fatal("expected a rejection string for missing product_id")
	}
	if !deps.Session.Cart().Empty() {
		t.Fatal("cart mutated by rejected call")
	}
}

func TestAddToCartUnavailableProductSpeaksSanitizedPhrase(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), ToolAddToCart, map[string]any{"product_id": "P3"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.EngineText != phraseItemUnavailable {
		t.Fatalf("EngineText = %q, want %q", out.EngineText, phraseItemUnavailable)
	}
}

func TestAddToCartCatalogFaultSpeaksDegradedPhrase(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{products: testProducts()}
	deps := newTestDeps(t, catalog)
	catalog.byIDErr = errors.New("connection reset")
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), ToolAddToCart, map[string]any{"product_id": "P1"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.EngineText != phraseCatalogDown {
		t.Fatalf("EngineText = %q, want %q", out.EngineText, phraseCatalogDown)
	}
	if strings.Contains(out.EngineText, "connection reset") {
		t.Fatal("raw error text leaked into speakable output")
	}
}

func TestViewCartPhrasings(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), ToolViewCart, nil)
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.EngineText != "Your cart is empty." {
		t.Fatalf("empty cart EngineText = %q", out.EngineText)
	}

	if _, err := executor(context.Background(), ToolAddToCart, map[string]any{"product_id": "P1", "quantity": float64(2)}); err != nil {
		t.Fatalf("add error = %v", err)
	}
	out, _ = executor(context.Background(), ToolViewCart, nil)
	if !strings.Contains(out.EngineText, "2 Koshari") {
		t.Fatalf("single-item EngineText = %q, want item and quantity", out.EngineText)
	}

	if _, err := executor(context.Background(), ToolAddToCart, map[string]any{"product_id": "P2"}); err != nil {
		t.Fatalf("add error = %v", err)
	}
	out, _ = executor(context.Background(), ToolViewCart, nil)
	if !strings.Contains(out.EngineText, "2 items") || !strings.Contains(out.EngineText, "10.25") {
		t.Fatalf("aggregate EngineText = %q, want item count and total", out.EngineText)
	}
}

func TestLookupMenuSpeaksMatchesAndConfirmsToEngine(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), ToolLookupMenu, map[string]any{"query": "chicken"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	want := "The Shish Tawook is made with grilled chicken skewers and costs 4.25."
	if out.SpokenText != want {
		t.Fatalf("SpokenText = %q, want %q", out.SpokenText, want)
	}
	if out.EngineText == "" || out.EngineText == out.SpokenText {
		t.Fatalf("EngineText = %q, want a short confirmation distinct from the spoken text", out.EngineText)
	}
}

func TestLookupMenuNoMatchSpeaksNoMatchResponse(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), ToolLookupMenu, map[string]any{"query": "sushi"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if !strings.Contains(out.SpokenText, "sushi") {
		t.Fatalf("SpokenText = %q, want no-match phrasing naming the query", out.SpokenText)
	}
}

func TestExecutorUnknownTool(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t, &fakeCatalog{products: testProducts()})
	executor := NewExecutor(deps)

	out, err := executor(context.Background(), "checkout", nil)
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected non-empty error for unknown tool")
	}
}
