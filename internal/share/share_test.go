package share

import (
	"context"
	"errors"
	"testing"
)

type fakeSharer struct {
	err    error
	called bool
	text   string
}

func (f *fakeSharer) Share(_ context.Context, _, text string) error {
	f.called = true
	f.text = text
	return f.err
}

type failingClipboard struct{}

func (failingClipboard) Copy(context.Context, string) error {
	return errors.New("clipboard unavailable")
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()

	t.Run("primary sharer succeeds", func(t *testing.T) {
		sharer := &fakeSharer{}
		clip := &Buffer{}

		outcome, err := Deliver(ctx, sharer, clip, "title", "summary")
		if err != nil {
			t.Fatalf("Deliver failed: %v", err)
		}
		if outcome != Delivered {
			t.Errorf("outcome = %v, want Delivered", outcome)
		}
		if !sharer.called || sharer.text != "summary" {
			t.Errorf("sharer got %q", sharer.text)
		}
		if clip.Contents() != "" {
			t.Error("clipboard should be untouched on delivery")
		}
	})

	t.Run("sharer failure falls back to clipboard", func(t *testing.T) {
		sharer := &fakeSharer{err: errors.New("dialog dismissed")}
		clip := &Buffer{}

		outcome, err := Deliver(ctx, sharer, clip, "title", "summary")
		if err != nil {
			t.Fatalf("Deliver failed: %v", err)
		}
		if outcome != CopiedToClipboard {
			t.Errorf("outcome = %v, want CopiedToClipboard", outcome)
		}
		if clip.Contents() != "summary" {
			t.Errorf("clipboard = %q", clip.Contents())
		}
	})

	t.Run("nil sharer goes straight to clipboard", func(t *testing.T) {
		clip := &Buffer{}

		outcome, err := Deliver(ctx, nil, clip, "title", "summary")
		if err != nil {
			t.Fatalf("Deliver failed: %v", err)
		}
		if outcome != CopiedToClipboard {
			t.Errorf("outcome = %v, want CopiedToClipboard", outcome)
		}
	})

	t.Run("both paths failing is a failure", func(t *testing.T) {
		sharer := &fakeSharer{err: errors.New("dialog dismissed")}

		outcome, err := Deliver(ctx, sharer, failingClipboard{}, "title", "summary")
		if err == nil {
			t.Fatal("expected error")
		}
		if outcome != Failed {
			t.Errorf("outcome = %v, want Failed", outcome)
		}
	})
}

func TestOutcomeString(t *testing.T) {
	if Delivered.String() != "delivered" ||
		CopiedToClipboard.String() != "copied_to_clipboard" ||
		Failed.String() != "failed" {
		t.Error("unexpected outcome labels")
	}
}
