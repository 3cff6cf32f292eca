// Package pricing is the single authority for effective item prices. Every
// entry point that prices a line (cart add, order placement, order detail
// display) resolves through here so the rules cannot drift between handlers.
package pricing

import (
	"github.com/IAN-www1/MOOBILE/internal/models"
)

// Resolve returns the effective unit price for an item and an optional size
// label. A size-specific price wins when the label matches exactly
// (case-sensitive, as stored); an unknown label silently degrades to the base
// price rather than erroring — existing mobile clients depend on that
// fallback. A nil item resolves to 0.
func Resolve(item *models.Item, size string) float64 {
	if item == nil {
		return 0
	}
	if size != "" {
		for _, s := range item.Sizes {
			if s.Size == size {
				return s.Price
			}
		}
	}
	return item.Price
}

// Total sums quantity times unit price across order lines.
func Total(lines []models.OrderLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}
