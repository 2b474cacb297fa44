package documents

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/extract"
	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/shared/storage/object"
)

// Service contains business logic for documents.
type Service struct {
	Store           object.ObjectStore
	Repo            Repo
	StorageProvider string
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, userId, fileName string, r io.Reader) (Document, error) {
	if strings.TrimSpace(userId) == "" || strings.TrimSpace(fileName) == "" {
		return Document{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Document{}, fmt.Errorf("storage save: %w", err)
	}

	doc := Document{
		ID:              uuid.NewString(),
		UserID:          userId,
		FileName:        fileName,
		MimeType:        mimeType,
		SizeBytes:       size,
		StorageProvider: s.StorageProvider,
		StorageKey:      storageKey,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Get returns one of the user's documents.
func (s *Service) Get(ctx context.Context, userId, documentID string) (Document, error) {
	if userId == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userId, documentID)
}

// List returns the user's documents newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Document, error) {
	if userId == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// Text returns the plain text of a document, extracting it on first use.
func (s *Service) Text(ctx context.Context, doc Document) (string, error) {
	if doc.ExtractedTextKey != "" {
		return s.load(ctx, doc.ExtractedTextKey)
	}
	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return "", fmt.Errorf("document %s: %w: %w", doc.ID, ErrExtraction, err)
	}
	if err := s.Repo.UpdateExtraction(ctx, doc.UserID, doc.ID, extract.ExtractedKey(doc.StorageKey), time.Now().UTC()); err != nil {
		return "", fmt.Errorf("document %s update extraction: %w", doc.ID, err)
	}
	return text, nil
}

func (s *Service) load(ctx context.Context, key string) (string, error) {
	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("storage open %s: %w", key, err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("storage read %s: %w", key, err)
	}
	return string(data), nil
}
