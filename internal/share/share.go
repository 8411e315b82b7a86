// Package share defines the sharing collaborator boundary: handing a summary
// to a platform share mechanism, with clipboard copy as the fallback before
// giving up.
package share

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Outcome reports how a share attempt was delivered.
type Outcome int

const (
	// Failed means neither the sharer nor the clipboard accepted the text.
	Failed Outcome = iota
	// Delivered means the primary share mechanism accepted the text.
	Delivered
	// CopiedToClipboard means the primary mechanism was unavailable or
	// errored and the text landed on the clipboard instead.
	CopiedToClipboard
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case CopiedToClipboard:
		return "copied_to_clipboard"
	default:
		return "failed"
	}
}

// Sharer hands text to a platform share dialog or equivalent.
type Sharer interface {
	Share(ctx context.Context, title, text string) error
}

// Clipboard copies text for later pasting.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// Deliver tries the primary sharer first, then falls back to the clipboard.
// A nil sharer means no native share mechanism exists and the clipboard is
// used directly. Failed is returned only when both paths error.
func Deliver(ctx context.Context, sharer Sharer, clip Clipboard, title, text string) (Outcome, error) {
	var shareErr error
	if sharer != nil {
		shareErr = sharer.Share(ctx, title, text)
		if shareErr == nil {
			return Delivered, nil
		}
	}

	if clip == nil {
		return Failed, fmt.Errorf("share failed and no clipboard available: %w", shareErr)
	}
	if err := clip.Copy(ctx, text); err != nil {
		return Failed, errors.Join(shareErr, fmt.Errorf("clipboard copy failed: %w", err))
	}
	return CopiedToClipboard, nil
}

// Buffer is an in-memory Clipboard. The server uses it as the terminal
// fallback; tests use it to observe copied text.
type Buffer struct {
	mu   sync.Mutex
	text string
}

// Copy stores the text, replacing any previous contents.
func (b *Buffer) Copy(_ context.Context, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	return nil
}

// Contents returns the last copied text.
func (b *Buffer) Contents() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}
