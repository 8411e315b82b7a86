// Package ocr defines the receipt-extraction collaborator boundary and its
// Gemini-backed implementation.
//
// Extraction is an external vision call that may fail or return junk; the
// contract here is deliberately loose. An Extraction carries the raw decoded
// JSON from the model, and the receipt package turns it into canonical
// items. On any error the normalizer is never invoked and the failure is
// surfaced to the caller as-is.
package ocr

import "context"

// Extraction is the raw result of a receipt-extraction call, before
// normalization. Items elements and Total keep the loose types the model
// produced (numbers, strings, or garbage).
type Extraction struct {
	Items []any
	Total any
}

// Extractor extracts line items from a base64-encoded receipt image.
type Extractor interface {
	ExtractReceipt(ctx context.Context, imageBase64 string) (*Extraction, error)
}
