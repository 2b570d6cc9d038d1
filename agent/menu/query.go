package menu

import (
	"fmt"
	"strings"
)

// Lookup returns every item whose name, localized name, category, localized
// category, description, or localized description contains query,
// case-insensitively. No ranking, no fuzziness; catalog order is preserved.
// An empty result is an expected outcome, not an error.
func Lookup(m *Menu, query string) []Item {
	matches := []Item{}
	if m == nil || strings.TrimSpace(query) == "" {
		return matches
	}
	q := strings.ToLower(strings.TrimSpace(query))
	for _, item := range m.Items {
		fields := []string{
			item.Name, item.NameLocalized,
			item.Category, item.CategoryLocalized,
			item.Description, item.DescriptionLocalized,
		}
		for _, f := range fields {
			if f != "" && strings.Contains(strings.ToLower(f), q) {
				matches = append(matches, item)
				break
			}
		}
	}
	return matches
}

// FindByCode matches code against short codes (case-insensitive) or exact
// item ids. Returns nil for an empty code or an empty menu.
func FindByCode(m *Menu, code string) *Item {
	code = strings.TrimSpace(code)
	if m == nil || code == "" {
		return nil
	}
	for i := range m.Items {
		item := &m.Items[i]
		if item.ShortCode != "" && strings.EqualFold(item.ShortCode, code) {
			return item
		}
		if item.ID == code {
			return item
		}
	}
	return nil
}

// Summarize renders a short digest of the first topN items plus the category
// lists. It is the only menu content ever embedded in the dialog engine's
// instruction context; the full projection stays out of the prompt.
func Summarize(m *Menu, topN int, currency string) string {
	if m == nil || len(m.Items) == 0 {
		return "No menu available."
	}
	if topN <= 0 {
		topN = 3
	}
	if topN > len(m.Items) {
		topN = len(m.Items)
	}

	lines := make([]string, 0, topN)
	for _, item := range m.Items[:topN] {
		lines = append(lines, summaryLine(item, currency))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Menu has %d items. Examples: %s.", m.Count, strings.Join(lines, "; "))
	fmt.Fprintf(&b, " Categories: %s.", joinOrNone(categories(m, false)))
	fmt.Fprintf(&b, " Localized categories: %s.", joinOrNone(categories(m, true)))
	return b.String()
}

func summaryLine(item Item, currency string) string {
	code := item.ShortCode
	if code == "" {
		code = idPrefix(item.ID)
	}
	if code == "" {
		code = "unknown"
	}

	line := code + ": " + displayName(item)
	if item.Price != nil {
		line += fmt.Sprintf(" - %.2f", *item.Price)
		if currency != "" {
			line += " " + currency
		}
	}
	return line
}

func displayName(item Item) string {
	switch {
	case item.Name != "" && item.NameLocalized != "":
		return item.Name + " / " + item.NameLocalized
	case item.Name != "":
		return item.Name
	case item.NameLocalized != "":
		return item.NameLocalized
	default:
		return "Unnamed"
	}
}

func idPrefix(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// categories collects up to 10 distinct category names in first-seen order.
func categories(m *Menu, localized bool) []string {
	const maxCategories = 10
	seen := make(map[string]struct{}, maxCategories)
	out := []string{}
	for _, item := range m.Items {
		name := item.Category
		if localized {
			name = item.CategoryLocalized
		}
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == maxCategories {
			break
		}
	}
	return out
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
