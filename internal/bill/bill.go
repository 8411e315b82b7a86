// Package bill implements the state transitions on a working Bill: adding
// and removing people and items, designating the payer, and toggling item
// assignments.
//
// Every operation validates its inputs before touching the bill, so a
// rejected call leaves the state exactly as it was. The bill's running total
// is adjusted incrementally on each item mutation rather than recomputed,
// keeping Total equal to the sum of item totals (up to floating-point drift).
package bill

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quicksplit/quicksplit/internal/models"
)

var (
	ErrEmptyName           = errors.New("name must not be empty")
	ErrNonPositivePrice    = errors.New("price must be greater than zero")
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")
	ErrPersonNotFound      = errors.New("person not found on bill")
	ErrItemNotFound        = errors.New("item not found on bill")
)

// avatarColors are cosmetic tags cycled through as people are added.
var avatarColors = []string{
	"purple", "magenta", "pink", "yellow",
	"blue", "indigo", "orange", "red",
}

// AddPerson appends a person with a fresh ID. The first person added to an
// empty bill becomes the payer.
func AddPerson(b *models.Bill, name string) (*models.Person, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	person := models.Person{
		ID:      uuid.New().String(),
		Name:    name,
		IsPayer: len(b.People) == 0,
		Color:   avatarColors[len(b.People)%len(avatarColors)],
	}
	b.People = append(b.People, person)
	return &b.People[len(b.People)-1], nil
}

// RemovePerson removes a person by ID and strips that ID from every item's
// assignment list. Item totals and the bill total are unaffected.
func RemovePerson(b *models.Bill, personID string) error {
	idx := -1
	for i := range b.People {
		if b.People[i].ID == personID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	b.People = append(b.People[:idx], b.People[idx+1:]...)

	for i := range b.Items {
		b.Items[i].AssignedTo = removeID(b.Items[i].AssignedTo, personID)
	}
	return nil
}

// SetPayer marks the named person as payer and clears the flag on everyone
// else. Exclusivity comes from the full rewrite, not an incremental toggle.
func SetPayer(b *models.Bill, personID string) error {
	found := false
	for i := range b.People {
		if b.People[i].ID == personID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	for i := range b.People {
		b.People[i].IsPayer = b.People[i].ID == personID
	}
	return nil
}

// AddItem appends an item with an empty assignment list and adds its total
// to the bill total. Quantity zero means "not specified" and defaults to 1.
func AddItem(b *models.Bill, name string, price, quantity float64) (*models.BillItem, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositivePrice, price)
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositiveQuantity, quantity)
	}

	totalPrice := price * quantity
	item := models.BillItem{
		ID:         uuid.New().String(),
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		AssignedTo: []string{},
	}
	b.Items = append(b.Items, item)
	b.Total += totalPrice
	return &b.Items[len(b.Items)-1], nil
}

// RemoveItem removes an item by ID and subtracts its total from the bill
// total.
func RemoveItem(b *models.Bill, itemID string) error {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			b.Total -= b.Items[i].TotalPrice
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// UpdateItemQuantity recomputes the item's total from its fixed unit price
// and adjusts the bill total by the difference. Unit price is not editable
// after creation.
func UpdateItemQuantity(b *models.Bill, itemID string, quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %v", ErrNonPositiveQuantity, quantity)
	}

	for i := range b.Items {
		if b.Items[i].ID == itemID {
			item := &b.Items[i]
			newTotal := item.Price * quantity
			b.Total += newTotal - item.TotalPrice
			item.Quantity = quantity
			item.TotalPrice = newTotal
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// AssignItem adds a person to an item's assignment list. Assigning someone
// already on the list is a no-op.
func AssignItem(b *models.Bill, itemID, personID string) error {
	found := false
	for i := range b.People {
		if b.People[i].ID == personID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}

	for i := range b.Items {
		if b.Items[i].ID == itemID {
			for _, id := range b.Items[i].AssignedTo {
				if id == personID {
					return nil
				}
			}
			b.Items[i].AssignedTo = append(b.Items[i].AssignedTo, personID)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// UnassignItem removes a person from an item's assignment list. Removing
// someone not on the list is a no-op.
func UnassignItem(b *models.Bill, itemID, personID string) error {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			b.Items[i].AssignedTo = removeID(b.Items[i].AssignedTo, personID)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// IsValidation reports whether err is one of the input-validation errors, as
// opposed to a lookup failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrNonPositivePrice) ||
		errors.Is(err, ErrNonPositiveQuantity)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
