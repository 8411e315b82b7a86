package bill

import (
	"errors"
	"math"
	"testing"

	"github.com/quicksplit/quicksplit/internal/models"
)

const epsilon = 0.001

// itemSum recomputes the bill total from scratch for invariant checks.
func itemSum(b *models.Bill) float64 {
	var sum float64
	for _, item := range b.Items {
		sum += item.TotalPrice
	}
	return sum
}

func checkTotalInvariant(t *testing.T, b *models.Bill) {
	t.Helper()
	if math.Abs(b.Total-itemSum(b)) > epsilon {
		t.Errorf("bill total %v diverged from item sum %v", b.Total, itemSum(b))
	}
}

func checkSinglePayer(t *testing.T, b *models.Bill) {
	t.Helper()
	payers := 0
	for _, p := range b.People {
		if p.IsPayer {
			payers++
		}
	}
	if payers > 1 {
		t.Errorf("found %d payers, want at most 1", payers)
	}
}

func TestAddPerson(t *testing.T) {
	b := &models.Bill{}

	alice, err := AddPerson(b, "Alice")
	if err != nil {
		t.Fatalf("AddPerson failed: %v", err)
	}
	if !alice.IsPayer {
		t.Error("first person should be payer by default")
	}
	if alice.ID == "" {
		t.Error("expected generated ID")
	}

	bob, err := AddPerson(b, "Bob")
	if err != nil {
		t.Fatalf("AddPerson failed: %v", err)
	}
	if bob.IsPayer {
		t.Error("second person should not be payer")
	}
	if alice.Color == bob.Color {
		t.Error("expected distinct avatar colors for first two people")
	}
	checkSinglePayer(t, b)

	if _, err := AddPerson(b, ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name error = %v, want ErrEmptyName", err)
	}
	if len(b.People) != 2 {
		t.Errorf("rejected add mutated people list: %d entries", len(b.People))
	}
}

func TestSetPayer(t *testing.T) {
	b := &models.Bill{}
	alice, _ := AddPerson(b, "Alice")
	bob, _ := AddPerson(b, "Bob")
	carol, _ := AddPerson(b, "Carol")

	if err := SetPayer(b, carol.ID); err != nil {
		t.Fatalf("SetPayer failed: %v", err)
	}
	checkSinglePayer(t, b)
	if b.Payer().ID != carol.ID {
		t.Errorf("payer = %s, want %s", b.Payer().ID, carol.ID)
	}
	if b.People[0].IsPayer {
		t.Errorf("previous payer %s still flagged", alice.Name)
	}

	if err := SetPayer(b, "nope"); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("unknown payer error = %v, want ErrPersonNotFound", err)
	}
	// A failed SetPayer must not disturb the current payer.
	if b.Payer() == nil || b.Payer().ID != carol.ID {
		t.Error("failed SetPayer changed the payer")
	}
	_ = bob
}

func TestRemovePersonCascadesAssignments(t *testing.T) {
	b := &models.Bill{}
	alice, _ := AddPerson(b, "Alice")
	bob, _ := AddPerson(b, "Bob")
	pizza, _ := AddItem(b, "Pizza", 10, 2)
	beer, _ := AddItem(b, "Beer", 5, 1)

	if err := AssignItem(b, pizza.ID, bob.ID); err != nil {
		t.Fatalf("AssignItem failed: %v", err)
	}
	if err := AssignItem(b, beer.ID, bob.ID); err != nil {
		t.Fatalf("AssignItem failed: %v", err)
	}
	totalBefore := b.Total

	if err := RemovePerson(b, bob.ID); err != nil {
		t.Fatalf("RemovePerson failed: %v", err)
	}
	for _, item := range b.Items {
		for _, id := range item.AssignedTo {
			if id == bob.ID {
				t.Errorf("item %s still assigned to removed person", item.Name)
			}
		}
	}
	if b.Total != totalBefore {
		t.Errorf("removing a person changed the total: %v -> %v", totalBefore, b.Total)
	}
	checkTotalInvariant(t, b)
	_ = alice
}

func TestItemMutations(t *testing.T) {
	b := &models.Bill{}
	AddPerson(b, "Alice")

	pizza, err := AddItem(b, "Pizza", 10, 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if math.Abs(pizza.TotalPrice-20) > epsilon {
		t.Errorf("total price = %v, want 20", pizza.TotalPrice)
	}
	checkTotalInvariant(t, b)

	// Quantity zero means unspecified and defaults to 1.
	beer, err := AddItem(b, "Beer", 5, 0)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if beer.Quantity != 1 || math.Abs(beer.TotalPrice-5) > epsilon {
		t.Errorf("default quantity item = %+v", beer)
	}
	checkTotalInvariant(t, b)

	if err := UpdateItemQuantity(b, pizza.ID, 3); err != nil {
		t.Fatalf("UpdateItemQuantity failed: %v", err)
	}
	if math.Abs(b.Items[0].TotalPrice-30) > epsilon {
		t.Errorf("recomputed total = %v, want 30", b.Items[0].TotalPrice)
	}
	checkTotalInvariant(t, b)

	if err := UpdateItemQuantity(b, pizza.ID, -1); !errors.Is(err, ErrNonPositiveQuantity) {
		t.Errorf("negative quantity error = %v", err)
	}
	checkTotalInvariant(t, b)

	if err := RemoveItem(b, beer.ID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	checkTotalInvariant(t, b)
	if len(b.Items) != 1 {
		t.Errorf("expected 1 item left, got %d", len(b.Items))
	}

	if err := RemoveItem(b, "nope"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("unknown item error = %v", err)
	}
}

func TestAddItemValidation(t *testing.T) {
	tests := []struct {
		name     string
		itemName string
		price    float64
		quantity float64
		wantErr  error
	}{
		{"empty name", "", 10, 1, ErrEmptyName},
		{"zero price", "Pizza", 0, 1, ErrNonPositivePrice},
		{"negative price", "Pizza", -5, 1, ErrNonPositivePrice},
		{"negative quantity", "Pizza", 10, -2, ErrNonPositiveQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &models.Bill{}
			if _, err := AddItem(b, tt.itemName, tt.price, tt.quantity); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddItem() error = %v, want %v", err, tt.wantErr)
			}
			if len(b.Items) != 0 || b.Total != 0 {
				t.Error("rejected AddItem mutated the bill")
			}
			if !IsValidation(tt.wantErr) {
				t.Errorf("%v should classify as a validation error", tt.wantErr)
			}
		})
	}
}

func TestAssignmentIdempotence(t *testing.T) {
	b := &models.Bill{}
	alice, _ := AddPerson(b, "Alice")
	pizza, _ := AddItem(b, "Pizza", 10, 1)

	if err := AssignItem(b, pizza.ID, alice.ID); err != nil {
		t.Fatalf("AssignItem failed: %v", err)
	}
	if err := AssignItem(b, pizza.ID, alice.ID); err != nil {
		t.Fatalf("re-assign failed: %v", err)
	}
	if len(b.Items[0].AssignedTo) != 1 {
		t.Errorf("re-assign duplicated entry: %v", b.Items[0].AssignedTo)
	}

	if err := UnassignItem(b, pizza.ID, alice.ID); err != nil {
		t.Fatalf("UnassignItem failed: %v", err)
	}
	if err := UnassignItem(b, pizza.ID, alice.ID); err != nil {
		t.Fatalf("unassigning an absent person should be a no-op, got %v", err)
	}
	if len(b.Items[0].AssignedTo) != 0 {
		t.Errorf("assignments left after unassign: %v", b.Items[0].AssignedTo)
	}

	if err := AssignItem(b, pizza.ID, "ghost"); !errors.Is(err, ErrPersonNotFound) {
		t.Errorf("assigning unknown person error = %v", err)
	}
}

// Random-ish sequence of mutations holds both bill invariants throughout.
func TestInvariantsAcrossSequence(t *testing.T) {
	b := &models.Bill{}

	alice, _ := AddPerson(b, "Alice")
	bob, _ := AddPerson(b, "Bob")
	carol, _ := AddPerson(b, "Carol")
	checkSinglePayer(t, b)

	p1, _ := AddItem(b, "Pasta", 12.5, 2)
	p2, _ := AddItem(b, "Tiramisu", 6.25, 1)
	checkTotalInvariant(t, b)

	AssignItem(b, p1.ID, alice.ID)
	AssignItem(b, p1.ID, bob.ID)
	AssignItem(b, p2.ID, carol.ID)
	SetPayer(b, bob.ID)
	checkSinglePayer(t, b)

	UpdateItemQuantity(b, p1.ID, 3)
	checkTotalInvariant(t, b)

	RemovePerson(b, alice.ID)
	checkTotalInvariant(t, b)
	checkSinglePayer(t, b)

	RemoveItem(b, p2.ID)
	checkTotalInvariant(t, b)

	if math.Abs(b.Total-37.5) > epsilon {
		t.Errorf("final total = %v, want 37.5", b.Total)
	}
}
