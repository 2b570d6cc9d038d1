package tool

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/oryxlabs/voiceorder/agent/cart"
	contractx "github.com/oryxlabs/voiceorder/agent/contract"
	menux "github.com/oryxlabs/voiceorder/agent/menu"
)

// Fixed speakable phrases per error kind. Raw error text goes to the log,
// never to the caller.
const (
	phraseItemUnavailable = "I'm sorry, that item isn't available right now."
	phraseCatalogDown     = "I'm sorry, I can't reach our menu right now. Please give me a moment and try again."
	phraseCartBroken      = "I'm sorry, something went wrong with your order. Let me get you some help."
	phraseAddFailed       = "I'm sorry, I couldn't add that to your order."
)

func executeAddToCart(ctx context.Context, deps Deps, args map[string]any) (contractx.ToolResult, error) {
	productID, _ := args["product_id"].(string)
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return engineReply(ToolAddToCart, "I need to know which item you'd like before I can add it to your order."), nil
	}
	// The dialog engine may name items by short code; resolve to the id.
	if match := menux.FindByCode(deps.Session.Menu(), productID); match != nil {
		productID = match.ID
	}

	var quantity *int
	if raw, ok := args["quantity"]; ok {
		qty, err := intArg(raw)
		if err != nil || qty <= 0 {
			return engineReply(ToolAddToCart, "I can only add a positive number of items. How many would you like?"), nil
		}
		quantity = &qty
	}

	params := cart.UpdateParams{
		ProductID: productID,
		Quantity:  quantity,
		TaxRate:   deps.Session.TaxRate(),
	}
	if raw, ok := args["special_instructions"]; ok {
		if instructions, ok := raw.(string); ok && strings.TrimSpace(instructions) != "" {
			trimmed := strings.TrimSpace(instructions)
			params.SpecialInstructions = &trimmed
		}
	}

	c := deps.Session.Cart()
	if err := deps.Engine.Update(ctx, c, params); err != nil {
		log.Error().Err(err).Str("product_id", productID).Msg("add_to_cart failed")
		return engineReply(ToolAddToCart, addFailurePhrase(err)), nil
	}

	item := c.Find(productID)
	if item == nil {
		log.Error().Str("product_id", productID).Msg("added item missing from cart")
		return engineReply(ToolAddToCart, phraseAddFailed), nil
	}
	return engineReply(ToolAddToCart, fmt.Sprintf(
		"I've added %s to your order. You now have %d, and your total is %.2f.",
		item.Name, item.Quantity, c.TotalAmount,
	)), nil
}

func addFailurePhrase(err error) string {
	switch {
	case errors.Is(err, contractx.ErrProductUnavailable):
		return phraseItemUnavailable
	case errors.Is(err, contractx.ErrCatalogUnavailable):
		return phraseCatalogDown
	case errors.Is(err, contractx.ErrInvalidCart):
		return phraseCartBroken
	default:
		return phraseAddFailed
	}
}

func executeViewCart(deps Deps) (contractx.ToolResult, error) {
	c := deps.Session.Cart()
	if c.Empty() {
		return engineReply(ToolViewCart, "Your cart is empty."), nil
	}
	if len(c.Items) == 1 {
		item := c.Items[0]
		return engineReply(ToolViewCart, fmt.Sprintf(
			"You have %d %s in your cart, and your total is %.2f.",
			item.Quantity, item.Name, c.TotalAmount,
		)), nil
	}
	return engineReply(ToolViewCart, fmt.Sprintf(
		"You have %d items in your cart, and your total is %.2f.",
		len(c.Items), c.TotalAmount,
	)), nil
}

func executeLookupMenu(deps Deps, args map[string]any) (contractx.ToolResult, error) {
	query, _ := args["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return engineReply(ToolLookupMenu, "What would you like me to look for on the menu?"), nil
	}

	matches := menux.Lookup(deps.Session.Menu(), query)
	if len(matches) == 0 {
		return contractx.ToolResult{
			Tool:       ToolLookupMenu,
			SpokenText: fmt.Sprintf("I couldn't find anything matching '%s' on our menu.", query),
			EngineText: fmt.Sprintf("No menu items matched '%s'.", query),
		}, nil
	}

	sentences := make([]string, 0, len(matches))
	for _, item := range matches {
		sentences = append(sentences, describeItem(item))
	}
	// The spoken text is delivered over the voice channel; the engine reply
	// only confirms delivery so the model does not narrate it a second time.
	return contractx.ToolResult{
		Tool:       ToolLookupMenu,
		SpokenText: strings.Join(sentences, " "),
		EngineText: fmt.Sprintf("Menu details for '%s' were already spoken to the caller.", query),
	}, nil
}

func describeItem(item menux.Item) string {
	name := item.Name
	if name == "" {
		name = item.NameLocalized
	}
	if name == "" {
		name = "Unnamed"
	}
	desc := item.Description
	if desc == "" {
		desc = item.DescriptionLocalized
	}

	switch {
	case desc != "" && item.Price != nil:
		return fmt.Sprintf("The %s is made with %s and costs %.2f.", name, desc, *item.Price)
	case desc != "":
		return fmt.Sprintf("The %s is made with %s.", name, desc)
	case item.Price != nil:
		return fmt.Sprintf("The %s costs %.2f.", name, *item.Price)
	default:
		return fmt.Sprintf("We have the %s on our menu.", name)
	}
}

func engineReply(tool, text string) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, EngineText: text}
}

// intArg accepts the number shapes a JSON tool-args payload can carry.
func intArg(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: quantity must be a whole number", contractx.ErrValidation)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: quantity must be a number", contractx.ErrValidation)
	}
}
