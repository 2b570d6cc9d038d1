package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/instructions.txt
var instructionsRaw string

const menuSummarySlot = "{{MENU_SUMMARY}}"

// Instructions renders the dialog-engine system prompt. Only the menu
// summary is interpolated; the full menu projection never enters the prompt
// so its size stays bounded and unavailable items leak no detail.
func Instructions(menuSummary string) string {
	tpl := strings.TrimSpace(instructionsRaw)
	return strings.TrimSpace(strings.ReplaceAll(tpl, menuSummarySlot, strings.TrimSpace(menuSummary)))
}
