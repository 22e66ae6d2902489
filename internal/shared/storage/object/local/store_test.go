package local

import (
	"bytes"
	"context"
	"testing"
)

func TestPutGetRemoveRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	payload := []byte("%PDF-1.4 test payload")
	key := "user-1/doc-1_report.pdf"

	if err := store.Put(ctx, key, "application/pdf", payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Get returned %q, want %q", got, payload)
	}

	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get(ctx, key); err == nil {
		t.Fatalf("expected Get after Remove to fail")
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	keys := []string{"../outside.pdf", "/etc/passwd", "a/../../b.pdf", "."}
	for _, key := range keys {
		if err := store.Put(ctx, key, "application/pdf", []byte("x")); err == nil {
			t.Fatalf("expected Put(%q) to fail", key)
		}
		if _, err := store.Get(ctx, key); err == nil {
			t.Fatalf("expected Get(%q) to fail", key)
		}
	}
}

func TestRemoveMissingObjectFails(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Remove(context.Background(), "user-1/missing.pdf"); err == nil {
		t.Fatalf("expected Remove of missing object to fail")
	}
}
