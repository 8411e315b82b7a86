package calculator

import (
	"math"
	"testing"

	"github.com/quicksplit/quicksplit/internal/models"
)

const epsilon = 0.001

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name         string
		items        []models.BillItem
		people       []models.Person
		wantErr      bool
		validateFunc func(t *testing.T, res *Result)
	}{
		{
			name: "unassigned item splits among everyone",
			items: []models.BillItem{
				{ID: "i1", Name: "Pizza", Price: 10, Quantity: 2, TotalPrice: 20, AssignedTo: []string{}},
			},
			people: []models.Person{
				{ID: "alice", Name: "Alice", IsPayer: true},
				{ID: "bob", Name: "Bob"},
			},
			validateFunc: func(t *testing.T, res *Result) {
				if math.Abs(res.PersonTotals["alice"]-10) > epsilon {
					t.Errorf("Alice total = %v, want 10", res.PersonTotals["alice"])
				}
				if math.Abs(res.PersonTotals["bob"]-10) > epsilon {
					t.Errorf("Bob total = %v, want 10", res.PersonTotals["bob"])
				}
				if len(res.Payments) != 1 {
					t.Fatalf("expected 1 payment, got %d", len(res.Payments))
				}
				p := res.Payments[0]
				if p.From != "bob" || p.To != "alice" || math.Abs(p.Amount-10) > epsilon {
					t.Errorf("payment = %+v, want bob->alice 10", p)
				}
			},
		},
		{
			name: "assigned item charged only to assignee",
			items: []models.BillItem{
				{ID: "i1", Name: "Beer", Price: 9, Quantity: 1, TotalPrice: 9, AssignedTo: []string{"bob"}},
			},
			people: []models.Person{
				{ID: "alice", Name: "Alice", IsPayer: true},
				{ID: "bob", Name: "Bob"},
			},
			validateFunc: func(t *testing.T, res *Result) {
				if res.PersonTotals["alice"] != 0 {
					t.Errorf("Alice total = %v, want 0", res.PersonTotals["alice"])
				}
				if math.Abs(res.PersonTotals["bob"]-9) > epsilon {
					t.Errorf("Bob total = %v, want 9", res.PersonTotals["bob"])
				}
				if len(res.Payments) != 1 {
					t.Fatalf("expected 1 payment, got %d", len(res.Payments))
				}
				if res.Payments[0].From != "bob" || math.Abs(res.Payments[0].Amount-9) > epsilon {
					t.Errorf("payment = %+v, want bob owes 9", res.Payments[0])
				}
			},
		},
		{
			name: "no payer emits no payments",
			items: []models.BillItem{
				{ID: "i1", Name: "Pizza", TotalPrice: 30, AssignedTo: []string{"bob"}},
			},
			people: []models.Person{
				{ID: "alice", Name: "Alice"},
				{ID: "bob", Name: "Bob"},
			},
			validateFunc: func(t *testing.T, res *Result) {
				if len(res.Payments) != 0 {
					t.Errorf("expected no payments, got %d", len(res.Payments))
				}
				if math.Abs(res.PersonTotals["bob"]-30) > epsilon {
					t.Errorf("Bob total = %v, want 30", res.PersonTotals["bob"])
				}
			},
		},
		{
			name: "duplicate assignees counted once",
			items: []models.BillItem{
				{ID: "i1", Name: "Wine", TotalPrice: 30, AssignedTo: []string{"alice", "alice", "bob"}},
			},
			people: []models.Person{
				{ID: "alice", Name: "Alice", IsPayer: true},
				{ID: "bob", Name: "Bob"},
			},
			validateFunc: func(t *testing.T, res *Result) {
				if math.Abs(res.PersonTotals["alice"]-15) > epsilon {
					t.Errorf("Alice total = %v, want 15", res.PersonTotals["alice"])
				}
				if math.Abs(res.PersonTotals["bob"]-15) > epsilon {
					t.Errorf("Bob total = %v, want 15", res.PersonTotals["bob"])
				}
			},
		},
		{
			name: "assignees not on the bill fall back to everyone",
			items: []models.BillItem{
				{ID: "i1", Name: "Ghost order", TotalPrice: 12, AssignedTo: []string{"charlie"}},
			},
			people: []models.Person{
				{ID: "alice", Name: "Alice", IsPayer: true},
				{ID: "bob", Name: "Bob"},
			},
			validateFunc: func(t *testing.T, res *Result) {
				if math.Abs(res.PersonTotals["alice"]-6) > epsilon {
					t.Errorf("Alice total = %v, want 6", res.PersonTotals["alice"])
				}
				if math.Abs(res.PersonTotals["bob"]-6) > epsilon {
					t.Errorf("Bob total = %v, want 6", res.PersonTotals["bob"])
				}
			},
		},
		{
			name: "zero-share people excluded from payments",
			items: []models.BillItem{
				{ID: "i1", Name: "Salad", TotalPrice: 8, AssignedTo: []string{"alice"}},
			},
			people: []models.Person{
				{ID: "alice", Name: "Alice", IsPayer: true},
				{ID: "bob", Name: "Bob"},
			},
			validateFunc: func(t *testing.T, res *Result) {
				if len(res.Payments) != 0 {
					t.Errorf("expected no payments, got %+v", res.Payments)
				}
			},
		},
		{
			name:    "no people is an error",
			items:   []models.BillItem{{ID: "i1", TotalPrice: 10}},
			people:  []models.Person{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ComputeSplit(tt.items, tt.people)
			if (err != nil) != tt.wantErr {
				t.Errorf("ComputeSplit() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, res)
			}
		})
	}
}

// Every item's full price must land on somebody: the person totals sum to
// the item total sum, and payments sum to the non-payer totals.
func TestComputeSplit_Conservation(t *testing.T) {
	items := []models.BillItem{
		{ID: "i1", Name: "Pizza", TotalPrice: 21.37, AssignedTo: []string{"alice", "bob"}},
		{ID: "i2", Name: "Beer", TotalPrice: 9.99, AssignedTo: []string{"bob"}},
		{ID: "i3", Name: "Fries", TotalPrice: 4.20, AssignedTo: []string{}},
		{ID: "i4", Name: "Dessert", TotalPrice: 13.13, AssignedTo: []string{"alice", "bob", "carol"}},
	}
	people := []models.Person{
		{ID: "alice", Name: "Alice", IsPayer: true},
		{ID: "bob", Name: "Bob"},
		{ID: "carol", Name: "Carol"},
	}

	res, err := ComputeSplit(items, people)
	if err != nil {
		t.Fatalf("ComputeSplit failed: %v", err)
	}

	var itemSum, totalSum float64
	for _, item := range items {
		itemSum += item.TotalPrice
	}
	for _, total := range res.PersonTotals {
		totalSum += total
	}
	if math.Abs(itemSum-totalSum) > epsilon {
		t.Errorf("person totals sum to %v, items sum to %v", totalSum, itemSum)
	}

	var paymentSum, nonPayerSum float64
	for _, p := range res.Payments {
		paymentSum += p.Amount
	}
	for _, person := range people {
		if !person.IsPayer {
			nonPayerSum += res.PersonTotals[person.ID]
		}
	}
	if math.Abs(paymentSum-nonPayerSum) > epsilon {
		t.Errorf("payments sum to %v, non-payer totals sum to %v", paymentSum, nonPayerSum)
	}
}

// Payments come out in people-list order, one per non-payer with a positive
// share.
func TestComputeSplit_PaymentOrder(t *testing.T) {
	items := []models.BillItem{
		{ID: "i1", TotalPrice: 30, AssignedTo: []string{}},
	}
	people := []models.Person{
		{ID: "carol", Name: "Carol"},
		{ID: "alice", Name: "Alice", IsPayer: true},
		{ID: "bob", Name: "Bob"},
	}

	res, err := ComputeSplit(items, people)
	if err != nil {
		t.Fatalf("ComputeSplit failed: %v", err)
	}

	if len(res.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(res.Payments))
	}
	if res.Payments[0].From != "carol" || res.Payments[1].From != "bob" {
		t.Errorf("payments out of order: %+v", res.Payments)
	}
	for _, p := range res.Payments {
		if p.To != "alice" {
			t.Errorf("payment directed at %s, want alice", p.To)
		}
	}
}
