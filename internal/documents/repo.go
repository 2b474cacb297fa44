package documents

import (
	"context"
	"time"
)

// Repo persists document metadata. Every lookup is scoped to the owner, and
// a document of another owner reads as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
	// UpdateExtraction records where the extracted text lives. The first
	// recorded key wins.
	UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string, extractedAt time.Time) error
}
