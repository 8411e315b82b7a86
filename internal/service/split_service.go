// Package service orchestrates the core packages behind the HTTP API:
// receipt extraction and normalization, split calculation, summary
// rendering, sharing, and bill persistence.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quicksplit/quicksplit/internal/calculator"
	"github.com/quicksplit/quicksplit/internal/models"
	"github.com/quicksplit/quicksplit/internal/ocr"
	"github.com/quicksplit/quicksplit/internal/receipt"
	"github.com/quicksplit/quicksplit/internal/share"
	"github.com/quicksplit/quicksplit/internal/storage"
	"github.com/quicksplit/quicksplit/internal/summary"
)

// SplitService ties receipt extraction, the split calculator, the summary
// renderers, and bill storage together.
type SplitService struct {
	store     storage.Store
	extractor ocr.Extractor
	sharer    share.Sharer
	clipboard share.Clipboard
}

// NewSplitService creates a SplitService. extractor may be nil when no OCR
// backend is configured; ProcessReceipt then fails with a clear error.
func NewSplitService(store storage.Store, extractor ocr.Extractor, sharer share.Sharer, clipboard share.Clipboard) *SplitService {
	return &SplitService{
		store:     store,
		extractor: extractor,
		sharer:    sharer,
		clipboard: clipboard,
	}
}

// ProcessReceipt runs OCR on the image and normalizes the result. Extraction
// failures surface as errors; a successful extraction that yielded nothing
// usable comes back as an empty Result which callers report as "no items
// detected".
func (s *SplitService) ProcessReceipt(ctx context.Context, imageBase64 string) (receipt.Result, error) {
	if s.extractor == nil {
		return receipt.Result{}, fmt.Errorf("receipt extraction is not configured")
	}

	extraction, err := s.extractor.ExtractReceipt(ctx, imageBase64)
	if err != nil {
		return receipt.Result{}, fmt.Errorf("receipt extraction failed: %w", err)
	}

	result := receipt.Normalize(extraction.Items, extraction.Total)
	slog.Info("Receipt processed",
		"items", len(result.Items),
		"dropped", result.Dropped,
		"total", result.Total,
	)
	return result, nil
}

// SummaryResult bundles the split calculation with its rendered forms.
type SummaryResult struct {
	PersonTotals map[string]float64
	Payments     []models.PaymentSummary
	Text         string
	HTML         string
}

// Summarize computes the split for the bill and renders both summary forms.
func (s *SplitService) Summarize(b *models.Bill) (*SummaryResult, error) {
	res, err := calculator.ComputeSplit(b.Items, b.People)
	if err != nil {
		return nil, err
	}

	html, err := summary.RenderHTML(b, res)
	if err != nil {
		return nil, err
	}

	return &SummaryResult{
		PersonTotals: res.PersonTotals,
		Payments:     res.Payments,
		Text:         summary.RenderText(b, res),
		HTML:         html,
	}, nil
}

// ShareSummary renders the text summary and hands it to the share
// collaborator, falling back to the clipboard. The text is returned alongside
// the outcome so callers can present it either way.
func (s *SplitService) ShareSummary(ctx context.Context, b *models.Bill) (share.Outcome, string, error) {
	res, err := calculator.ComputeSplit(b.Items, b.People)
	if err != nil {
		return share.Failed, "", err
	}

	text := summary.RenderText(b, res)
	outcome, err := share.Deliver(ctx, s.sharer, s.clipboard, "QuickSplit Summary", text)
	if err != nil {
		return outcome, text, err
	}
	return outcome, text, nil
}

// SaveBill persists the working bill under the given name for the user.
func (s *SplitService) SaveBill(ctx context.Context, userID, name string, b *models.Bill) (*models.SavedBill, error) {
	if name == "" {
		return nil, fmt.Errorf("bill name required")
	}

	saved := &models.SavedBill{
		Name:    name,
		OwnerID: userID,
		Total:   b.Total,
		People:  b.People,
		Items:   b.Items,
	}
	if err := s.store.SaveBill(ctx, saved); err != nil {
		return nil, err
	}

	slog.Info("Bill saved", "bill_id", saved.ID, "user_id", userID)
	return saved, nil
}

// ListBills returns the user's saved bills, metadata only.
func (s *SplitService) ListBills(ctx context.Context, userID string) ([]models.SavedBill, error) {
	return s.store.GetUserBills(ctx, userID)
}

// GetBill returns one saved bill with people, items, and assignments.
func (s *SplitService) GetBill(ctx context.Context, userID, billID string) (*models.SavedBill, error) {
	return s.store.GetBillDetails(ctx, billID, userID)
}

// DeleteBill removes one saved bill and its dependent records.
func (s *SplitService) DeleteBill(ctx context.Context, userID, billID string) error {
	if err := s.store.DeleteBill(ctx, billID, userID); err != nil {
		return err
	}
	slog.Info("Bill deleted", "bill_id", billID, "user_id", userID)
	return nil
}
