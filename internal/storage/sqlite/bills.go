package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quicksplit/quicksplit/internal/models"
	"github.com/quicksplit/quicksplit/internal/storage"
)

// SaveBill persists a bill with its people, items, and assignments in one
// transaction. Session IDs on people and items are replaced with fresh
// UUIDs; assignment lists are remapped through the old-to-new ID mapping,
// and assignments pointing at unknown people are dropped.
func (s *SQLiteStore) SaveBill(ctx context.Context, bill *models.SavedBill) error {
	if bill.OwnerID == "" {
		return fmt.Errorf("bill owner required")
	}
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.Date == 0 {
		bill.Date = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills (id, owner_id, name, bill_total, date) VALUES (?, ?, ?, ?, ?)",
		bill.ID, bill.OwnerID, bill.Name, bill.Total, bill.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	// Remap session person IDs to the persisted ones so assignment rows
	// reference real records.
	personIDs := make(map[string]string, len(bill.People))
	for i := range bill.People {
		person := &bill.People[i]
		newID := uuid.New().String()
		personIDs[person.ID] = newID
		person.ID = newID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO people (id, bill_id, name, is_payer, color, position) VALUES (?, ?, ?, ?, ?, ?)",
			person.ID, bill.ID, person.Name, person.IsPayer, person.Color, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		item.ID = uuid.New().String()

		_, err = tx.ExecContext(ctx,
			"INSERT INTO bill_items (id, bill_id, name, price, quantity, total_price, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
			item.ID, bill.ID, item.Name, item.Price, item.Quantity, item.TotalPrice, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		remapped := make([]string, 0, len(item.AssignedTo))
		for _, sessionID := range item.AssignedTo {
			personID, ok := personIDs[sessionID]
			if !ok {
				continue
			}
			remapped = append(remapped, personID)
			_, err = tx.ExecContext(ctx,
				"INSERT INTO item_assignments (item_id, person_id) VALUES (?, ?)",
				item.ID, personID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
		item.AssignedTo = remapped
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUserBills lists the user's bills newest first, metadata only.
func (s *SQLiteStore) GetUserBills(ctx context.Context, ownerID string) ([]models.SavedBill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, bill_total, date FROM bills WHERE owner_id = ? ORDER BY date DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := []models.SavedBill{}
	for rows.Next() {
		b := models.SavedBill{OwnerID: ownerID}
		if err := rows.Scan(&b.ID, &b.Name, &b.Total, &b.Date); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// GetBillDetails retrieves one bill with people, items, and assignments,
// scoped to the owning user.
func (s *SQLiteStore) GetBillDetails(ctx context.Context, billID, ownerID string) (*models.SavedBill, error) {
	bill := &models.SavedBill{OwnerID: ownerID}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, bill_total, date FROM bills WHERE id = ? AND owner_id = ?",
		billID, ownerID,
	).Scan(&bill.ID, &bill.Name, &bill.Total, &bill.Date)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, is_payer, color FROM people WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Person
		var color sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.IsPayer, &color); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		p.Color = color.String
		bill.People = append(bill.People, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, quantity, total_price FROM bill_items WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.BillItem
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.AssignedTo = []string{}
		bill.Items = append(bill.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		assignRows, err := s.db.QueryContext(ctx,
			"SELECT person_id FROM item_assignments WHERE item_id = ? ORDER BY person_id",
			item.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get item assignments: %w", err)
		}

		for assignRows.Next() {
			var personID string
			if err := assignRows.Scan(&personID); err != nil {
				assignRows.Close()
				return nil, fmt.Errorf("failed to scan assignment: %w", err)
			}
			item.AssignedTo = append(item.AssignedTo, personID)
		}
		if err := assignRows.Err(); err != nil {
			assignRows.Close()
			return nil, fmt.Errorf("failed to iterate assignments: %w", err)
		}
		assignRows.Close()
	}

	return bill, nil
}

// DeleteBill removes the bill; people, items, and assignments go with it via
// the cascade constraints.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID, ownerID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM bills WHERE id = ? AND owner_id = ?",
		billID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
