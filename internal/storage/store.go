// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/quicksplit/quicksplit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist or is not
// visible to the requesting user.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations the services depend on.
// The interface keeps the service layer independent of the backend; the
// sqlite subpackage is the only implementation today.
type Store interface {
	// SaveBill persists a bill with its people, items, and item-person
	// assignments. Fresh IDs are assigned to the bill, people, and items;
	// assignment references are remapped from the caller's session IDs.
	// The bill's ID and Date fields are populated on return.
	SaveBill(ctx context.Context, bill *models.SavedBill) error

	// GetUserBills lists the user's saved bills, newest first, metadata
	// only (no people or items).
	GetUserBills(ctx context.Context, ownerID string) ([]models.SavedBill, error)

	// GetBillDetails retrieves one bill with its people, items, and
	// assignments. Returns ErrNotFound when the bill does not exist or
	// belongs to another user.
	GetBillDetails(ctx context.Context, billID, ownerID string) (*models.SavedBill, error)

	// DeleteBill removes a bill and all dependent records. Returns
	// ErrNotFound when the bill does not exist or belongs to another user.
	DeleteBill(ctx context.Context, billID, ownerID string) error

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
