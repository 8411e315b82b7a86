// Package calculator computes per-person shares and payer-directed
// settlements for a bill.
package calculator

import (
	"fmt"

	"github.com/quicksplit/quicksplit/internal/models"
)

// Result holds the outcome of a split calculation.
type Result struct {
	// PersonTotals maps person ID to the amount that person owes in total.
	// Every person on the bill has an entry, possibly zero.
	PersonTotals map[string]float64

	// Payments are the settlements directed at the payer, one per non-payer
	// with a strictly positive total, in people-list order. Empty when no
	// payer is designated.
	Payments []models.PaymentSummary
}

// ComputeSplit calculates how much each person owes and who pays whom.
//
// Items with assignees are split equally among them (duplicates and IDs not
// on the bill are ignored). Items with no valid assignee are split equally
// among everyone on the bill. No rounding happens here; amounts stay exact
// until formatting.
//
// Settlements form a star around the payer: each non-payer with a positive
// total owes the payer that amount directly. There is no netting between
// non-payers. If no payer is designated, no payments are emitted and callers
// see the totals only.
//
// The people list must be non-empty; the all-people fallback is undefined
// otherwise.
func ComputeSplit(items []models.BillItem, people []models.Person) (*Result, error) {
	if len(people) == 0 {
		return nil, fmt.Errorf("must have at least one person")
	}

	onBill := make(map[string]bool, len(people))
	totals := make(map[string]float64, len(people))
	for _, p := range people {
		onBill[p.ID] = true
		totals[p.ID] = 0
	}

	for _, item := range items {
		assignees := dedupe(item.AssignedTo, onBill)
		if len(assignees) == 0 {
			// Unassigned items are shared by the whole table.
			share := item.TotalPrice / float64(len(people))
			for _, p := range people {
				totals[p.ID] += share
			}
			continue
		}

		share := item.TotalPrice / float64(len(assignees))
		for _, id := range assignees {
			totals[id] += share
		}
	}

	result := &Result{PersonTotals: totals}

	var payer *models.Person
	for i := range people {
		if people[i].IsPayer {
			payer = &people[i]
			break
		}
	}
	if payer == nil {
		return result, nil
	}

	for _, p := range people {
		if p.ID == payer.ID || totals[p.ID] <= 0 {
			continue
		}
		result.Payments = append(result.Payments, models.PaymentSummary{
			From:   p.ID,
			To:     payer.ID,
			Amount: totals[p.ID],
		})
	}

	return result, nil
}

// dedupe filters ids to those present in valid, dropping duplicates while
// preserving first-seen order.
func dedupe(ids []string, valid map[string]bool) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !valid[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
