package documents

import (
	"path/filepath"
	"strings"
	"time"
)

// Document is an uploaded resume file owned by one user or guest.
type Document struct {
	ID               string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
}

// Extracted reports whether a plain-text copy has been stored.
func (d Document) Extracted() bool {
	return d.ExtractedTextKey != ""
}

// Format names the resume format: pdf, docx, text or other.
func (d Document) Format() string {
	mime := strings.ToLower(d.MimeType)
	switch {
	case strings.HasPrefix(mime, "application/pdf"):
		return "pdf"
	case strings.Contains(mime, "wordprocessingml"):
		return "docx"
	case strings.HasPrefix(mime, "text/plain"):
		return "text"
	}
	switch strings.ToLower(filepath.Ext(d.FileName)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".txt":
		return "text"
	}
	return "other"
}
