package models

// Person represents one participant on a bill.
type Person struct {
	// ID is the unique identifier for the person (UUID format once persisted).
	ID string `json:"id"`

	// Name is the non-empty display name.
	Name string `json:"name"`

	// IsPayer marks the person who fronted the payment. At most one person
	// on a bill has this set; SetPayer enforces exclusivity.
	IsPayer bool `json:"isPayer"`

	// Color is a cosmetic avatar tag with no semantic meaning.
	Color string `json:"color,omitempty"`
}

// BillItem represents a single receipt line.
type BillItem struct {
	// ID is the unique identifier for the item (UUID format once persisted).
	ID string `json:"id"`

	// Name is the non-empty item description (e.g. "Pizza", "Beer").
	Name string `json:"name"`

	// Price is the unit price, non-negative.
	Price float64 `json:"price"`

	// Quantity is a positive count. Practically integer-valued but not
	// required to be.
	Quantity float64 `json:"quantity"`

	// TotalPrice is always Price × Quantity. Quantity changes recompute it;
	// Price is not editable after creation.
	TotalPrice float64 `json:"totalPrice"`

	// AssignedTo lists the person IDs splitting this item. Order carries no
	// meaning; IDs are unique. An empty list means the item is split among
	// everyone on the bill.
	AssignedTo []string `json:"assignedTo"`
}

// Bill is the working state of a bill-editing session.
type Bill struct {
	// Items are the receipt lines in display order.
	Items []BillItem `json:"items"`

	// People are the participants in the order they were added.
	People []Person `json:"people"`

	// Total is the running sum of every item's TotalPrice, maintained
	// incrementally by the mutation operations in the bill package.
	Total float64 `json:"billTotal"`
}

// Payer returns the designated payer, or nil if none is set.
func (b *Bill) Payer() *Person {
	for i := range b.People {
		if b.People[i].IsPayer {
			return &b.People[i]
		}
	}
	return nil
}

// PersonName resolves a person ID to a display name.
// Returns "Unknown" for IDs not on the bill.
func (b *Bill) PersonName(id string) string {
	for i := range b.People {
		if b.People[i].ID == id {
			return b.People[i].Name
		}
	}
	return "Unknown"
}

// SavedBill is a Bill persisted to storage under a name and date.
// It is stored as four related records: the bill row, its people, its items,
// and the item-person assignment joins.
type SavedBill struct {
	// ID is the unique identifier for the saved bill (UUID format).
	ID string `json:"id"`

	// Name is the user-chosen title (e.g. "Friday dinner").
	Name string `json:"name"`

	// Date is the Unix timestamp when the bill was saved.
	Date int64 `json:"date"`

	// OwnerID is the user who saved the bill. Bills are visible only to
	// their owner.
	OwnerID string `json:"-"`

	// Total is the bill total at save time.
	Total float64 `json:"billTotal"`

	// People and Items are empty on list responses; GetBillDetails fills
	// them in.
	People []Person   `json:"people,omitempty"`
	Items  []BillItem `json:"items,omitempty"`
}

// PaymentSummary is one directed settlement: From owes To (the payer) Amount.
// The split calculation emits one entry per non-payer with a strictly
// positive share, and none for the payer.
type PaymentSummary struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
