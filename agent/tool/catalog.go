// Package tool exposes the order session's operations as invocable tools.
// Every executor returns speakable text inside the result; internal errors
// never cross the tool boundary unformatted.
package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/oryxlabs/voiceorder/agent/cart"
	contractx "github.com/oryxlabs/voiceorder/agent/contract"
	sessionx "github.com/oryxlabs/voiceorder/agent/session"
)

const (
	ToolAddToCart    = "add_to_cart"
	ToolViewCart     = "view_cart"
	ToolLookupMenu   = "lookup_menu"
	ToolTransferCall = "transfer_call"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// Deps is everything one session's tools need. Engine and Session must
// belong to the same call; CallControl may be nil when the deployment has no
// human fallback line.
type Deps struct {
	Session     *sessionx.Session
	Engine      *cart.Engine
	CallControl contractx.CallControl
}

// BuildForSession returns the tool declarations for the dialog engine to
// bind, plus the executor that runs them against this session.
func BuildForSession(deps Deps) ([]*schema.ToolInfo, Executor) {
	return toolInfos(), NewExecutor(deps)
}

func NewExecutor(deps Deps) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolAddToCart:
			return executeAddToCart(ctx, deps, args)
		case ToolViewCart:
			return executeViewCart(deps)
		case ToolLookupMenu:
			return executeLookupMenu(deps, args)
		case ToolTransferCall:
			return executeTransferCall(ctx, deps)
		default:
			return contractx.ToolResult{
				Tool:  tool,
				Error: fmt.Sprintf("tool=%s is not part of the order session", tool),
			}, nil
		}
	}
}

func toolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolAddToCart,
			Desc: "Add a menu item to the caller's order, or change the quantity of an item already in it.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.String, Desc: "Menu item id or short code", Required: true},
				"quantity":   {Type: schema.Integer, Desc: "How many to set; omit to add one more"},
				"special_instructions": {
					Type: schema.String, Desc: "Preparation notes from the caller",
				},
			}),
		},
		{
			Name: ToolViewCart,
			Desc: "Describe what is currently in the caller's order.",
		},
		{
			Name: ToolLookupMenu,
			Desc: "Find menu items matching the caller's words and speak their details.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {Type: schema.String, Desc: "Words from the caller to match against the menu", Required: true},
			}),
		},
		{
			Name: ToolTransferCall,
			Desc: "Transfer the caller to a human on the phone line.",
		},
	}
}
