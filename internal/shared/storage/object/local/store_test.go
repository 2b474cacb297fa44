package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "user-1", "resume.txt", strings.NewReader("Experience\nBuilt things"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("Experience\nBuilt things")) {
		t.Fatalf("unexpected size %d", size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("expected text/plain, got %q", mimeType)
	}
	if !strings.HasSuffix(key, "_resume.txt") {
		t.Fatalf("unexpected key %q", key)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "Experience\nBuilt things" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, _, _, err := store.Save(context.Background(), "u", "../x.pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected invalid file name to be rejected")
	}
}
