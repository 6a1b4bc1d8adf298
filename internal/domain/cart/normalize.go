package cart

import "github.com/shopspring/decimal"

// Merge folds incoming lines into an existing cart. Lines sharing a
// (ProductID, Unit) key are combined by summing quantities; the existing
// line's name and price win. Inputs are not mutated and line order is
// preserved: existing lines first, then new keys in incoming order.
func Merge(existing, incoming []Line) []Line {
	merged := make([]Line, len(existing))
	copy(merged, existing)

	index := make(map[Key]int, len(merged))
	for i, line := range merged {
		index[line.Key()] = i
	}

	for _, line := range incoming {
		if i, ok := index[line.Key()]; ok {
			merged[i].Quantity = merged[i].Quantity.Add(line.Quantity)
			continue
		}
		index[line.Key()] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

// Adjust sets the quantity of the line with the given key. A quantity of
// zero or less removes the line. Adjusting a key that is not in the cart
// is a no-op. The input slice is not mutated.
func Adjust(lines []Line, key Key, quantity decimal.Decimal) []Line {
	result := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.Key() != key {
			result = append(result, line)
			continue
		}
		if quantity.IsPositive() {
			line.Quantity = quantity
			result = append(result, line)
		}
	}
	return result
}

// Subtotal sums line totals at full precision
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Total())
	}
	return total
}
