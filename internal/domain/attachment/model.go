package attachment

import (
	"errors"
	"io"
)

// MaxDocumentSize is the upload ceiling for application documents.
const MaxDocumentSize = 10 << 20 // 10 MB

// PDFContentType is the only accepted MIME type for application documents.
const PDFContentType = "application/pdf"

// Kind constants for application documents.
const (
	KindProof = "proof"
	KindCV    = "cv"
)

// Domain errors — one per violated constraint so the form can show a
// specific message for wrong type vs. too large.
var (
	ErrMissing  = errors.New("document is required")
	ErrNotPDF   = errors.New("document must be a PDF")
	ErrTooLarge = errors.New("document must be 10 MB or smaller")
)

// Upload carries one submitted document before it reaches durable storage.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Validate checks the document against type and size constraints.
// PRE: Upload struct is populated from the multipart form
// POST: Returns the first violated constraint's error, nil if acceptable
func (u *Upload) Validate() error {
	if u.ContentType != PDFContentType {
		return ErrNotPDF
	}
	if u.Size > MaxDocumentSize {
		return ErrTooLarge
	}
	return nil
}
