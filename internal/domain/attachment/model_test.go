package attachment

import (
	"strings"
	"testing"
)

// TestValidate_AcceptsPDFWithinLimit tests the happy path.
func TestValidate_AcceptsPDFWithinLimit(t *testing.T) {
	u := Upload{
		Filename:    "proof.pdf",
		ContentType: PDFContentType,
		Size:        2 << 20,
		Data:        strings.NewReader("%PDF-1.7"),
	}
	if err := u.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidate_RejectsWrongType tests that a non-PDF gets the type-specific error.
func TestValidate_RejectsWrongType(t *testing.T) {
	u := Upload{Filename: "proof.png", ContentType: "image/png", Size: 1024}
	if err := u.Validate(); err != ErrNotPDF {
		t.Errorf("expected ErrNotPDF, got %v", err)
	}
}

// TestValidate_RejectsOversized tests that an oversized PDF gets the
// size-specific error, not the type error.
func TestValidate_RejectsOversized(t *testing.T) {
	u := Upload{Filename: "proof.pdf", ContentType: PDFContentType, Size: MaxDocumentSize + 1}
	if err := u.Validate(); err != ErrTooLarge {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

// TestValidate_BoundarySize tests that exactly 10 MB is accepted.
func TestValidate_BoundarySize(t *testing.T) {
	u := Upload{Filename: "proof.pdf", ContentType: PDFContentType, Size: MaxDocumentSize}
	if err := u.Validate(); err != nil {
		t.Errorf("unexpected error at boundary: %v", err)
	}
}
