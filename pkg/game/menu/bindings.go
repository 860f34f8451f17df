// Package menu lists the key bindings for the help overlay.
package menu

import (
	"fmt"
	"strings"

	engineinput "mcrogueface/pkg/engine/input"
)

// BindingItem is one line of the help overlay.
type BindingItem struct {
	Action engineinput.Action
	Codes  []string
}

// GetLabel returns the display label for this binding.
func (b BindingItem) GetLabel() string {
	codeText := strings.Join(b.Codes, " ")
	if codeText == "" {
		codeText = "(unbound)"
	}
	return fmt.Sprintf("%-18s %s", engineinput.ActionName(b.Action), codeText)
}

// BindingItems returns every action after ActionNone with its current codes,
// in action order.
func BindingItems() []BindingItem {
	byAction := engineinput.GetBindingsByAction()
	var items []BindingItem
	for act := engineinput.ActionNone + 1; act <= engineinput.ActionQuit; act++ {
		items = append(items, BindingItem{Action: act, Codes: byAction[act]})
	}
	return items
}

// HelpLines returns the labels of all binding items.
func HelpLines() []string {
	items := BindingItems()
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.GetLabel()
	}
	return lines
}
