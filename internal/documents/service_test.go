package documents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	return &Service{Store: local.New(t.TempDir()), Repo: repo, StorageProvider: "local"}, repo
}

func TestServiceUploadAndExtract(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "guest:g1", "cv.txt", strings.NewReader("Experience\nBuilt   Go services"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.Format() != "text" || doc.Extracted() {
		t.Fatalf("unexpected document %+v", doc)
	}

	text, err := svc.Text(ctx, doc)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text != "Experience\nBuilt Go services" {
		t.Fatalf("unexpected text %q", text)
	}

	stored, err := repo.GetByID(ctx, "guest:g1", doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Extracted() {
		t.Fatalf("expected extraction to be recorded")
	}
	again, err := svc.Text(ctx, stored)
	if err != nil || again != text {
		t.Fatalf("cached text mismatch: %q %v", again, err)
	}
}

func TestServiceUploadRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Upload(context.Background(), " ", "cv.txt", strings.NewReader("x")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestServiceTextUnsupportedType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	doc, err := svc.Upload(ctx, "u1", "photo.png", strings.NewReader("\x89PNG\r\n\x1a\n0000"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := svc.Text(ctx, doc); !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestMemoryRepoScopesToOwner(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	now := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, Document{ID: id, UserID: "u1", CreatedAt: now.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := repo.GetByID(ctx, "u2", "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other owner to miss, got %v", err)
	}
	docs, err := repo.ListByUser(ctx, "u1", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "c" || docs[1].ID != "b" {
		t.Fatalf("unexpected order %+v", docs)
	}
	if err := repo.UpdateExtraction(ctx, "u1", "a", "first", now); err != nil {
		t.Fatalf("update: %v", err)
	}
	_ = repo.UpdateExtraction(ctx, "u1", "a", "second", now)
	doc, _ := repo.GetByID(ctx, "u1", "a")
	if doc.ExtractedTextKey != "first" {
		t.Fatalf("expected first key to win, got %q", doc.ExtractedTextKey)
	}
}
