// Package receipt turns the loosely-typed output of receipt extraction into
// canonical bill items.
//
// Extraction models return JSON where any field can be missing, a number, or
// a "stringly-typed" number with currency symbols mixed in. All of that
// defensive parsing is isolated here: Normalize never fails, every produced
// item has valid numeric fields, and malformed records are counted rather
// than raised.
package receipt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quicksplit/quicksplit/internal/models"
)

// Result is the outcome of normalizing one extraction payload.
type Result struct {
	// Items are the canonical bill items, assignment lists empty.
	Items []models.BillItem

	// Total is the bill total: the extracted total when parseable and
	// non-zero, otherwise the sum of item totals.
	Total float64

	// Dropped counts raw records that were not JSON objects and were
	// skipped.
	Dropped int
}

// Empty reports the "nothing detected" condition: no usable items and a zero
// total. Callers should treat this as a soft failure distinct from an
// extraction error.
func (r Result) Empty() bool {
	return len(r.Items) == 0 && r.Total == 0
}

// Normalize converts raw extraction records into canonical items plus a bill
// total. rawItems elements are expected to be JSON objects with optional
// name, quantity, unitPrice (or price), and totalPrice fields; rawTotal is a
// number or numeric string.
//
// Field rules, in order of authority:
//   - name defaults to a positional placeholder when absent or empty.
//   - quantity defaults to 1 when missing, unparseable, or not positive.
//   - unitPrice falls back to the price field, then to 0.
//   - totalPrice is taken as given when parseable, else unitPrice × quantity.
//     When a total exists but the unit price is 0, the unit price is derived
//     from the total, so an inconsistent pair resolves in the total's favor.
//
// NaN never escapes: price fields coerce to 0 and quantity to 1.
func Normalize(rawItems []any, rawTotal any) Result {
	var res Result

	for i, raw := range rawItems {
		record, ok := raw.(map[string]any)
		if !ok || record == nil {
			res.Dropped++
			continue
		}

		name := stringField(record["name"])
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}

		quantity := 1.0
		if q, ok := parseNumber(record["quantity"]); ok && q > 0 {
			quantity = q
		}

		unitPrice, ok := parseNumber(record["unitPrice"])
		if !ok {
			unitPrice, _ = parseNumber(record["price"])
		}

		totalPrice, ok := parseNumber(record["totalPrice"])
		if !ok {
			totalPrice = unitPrice * quantity
		}

		// The stated total wins over a missing unit price.
		if totalPrice > 0 && unitPrice == 0 && quantity > 0 {
			unitPrice = totalPrice / quantity
		}

		if math.IsNaN(unitPrice) {
			unitPrice = 0
		}
		if math.IsNaN(totalPrice) {
			totalPrice = 0
		}
		if math.IsNaN(quantity) || quantity <= 0 {
			quantity = 1
		}

		res.Items = append(res.Items, models.BillItem{
			ID:         uuid.New().String(),
			Name:       name,
			Price:      unitPrice,
			Quantity:   quantity,
			TotalPrice: totalPrice,
			AssignedTo: []string{},
		})
	}

	if t, ok := parseNumber(rawTotal); ok && t != 0 {
		res.Total = t
	} else if len(res.Items) > 0 {
		for _, item := range res.Items {
			res.Total += item.TotalPrice
		}
	}

	return res
}

// parseNumber extracts a finite float from a number or numeric string.
// Strings are stripped of everything except digits and dots first, so
// "$12.50" and "12,50 €" both parse (the latter as 1250 — extraction models
// are prompted to use dot decimals).
func parseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		stripped := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' {
				return r
			}
			return -1
		}, n)
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// stringField renders a value as a trimmed string, empty for nil or
// non-scalar values.
func stringField(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}
