package documents

import "time"

// DocumentResponse is the API shape of a document. Storage keys stay internal.
type DocumentResponse struct {
	DocumentID  string     `json:"documentId"`
	FileName    string     `json:"fileName"`
	MimeType    string     `json:"mimeType"`
	Format      string     `json:"format"`
	SizeBytes   int64      `json:"sizeBytes"`
	Extracted   bool       `json:"extracted"`
	ExtractedAt *time.Time `json:"extractedAt,omitempty"`
	UploadedAt  time.Time  `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  doc.ID,
		FileName:    doc.FileName,
		MimeType:    doc.MimeType,
		Format:      doc.Format(),
		SizeBytes:   doc.SizeBytes,
		Extracted:   doc.Extracted(),
		ExtractedAt: doc.ExtractedAt,
		UploadedAt:  doc.CreatedAt,
	}
}
