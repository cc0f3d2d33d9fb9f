package paper

import (
	"errors"
	"testing"
)

func TestValidateForCreate(t *testing.T) {
	tests := []struct {
		name    string
		p       Paper
		wantErr error
	}{
		{"valid", Paper{ID: "p1", Title: "A Paper"}, nil},
		{"missing id", Paper{Title: "A Paper"}, ErrEmptyID},
		{"missing title", Paper{ID: "p1"}, ErrEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.ValidateForCreate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateForCreate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Errorf("NewID() produced %q then %q, want distinct non-empty ids", a, b)
	}
}

func TestHasPDF(t *testing.T) {
	p := Paper{ID: "p1", Title: "T"}
	if p.HasPDF() {
		t.Error("HasPDF() = true without a path")
	}
	p.PDFPath = "/tmp/p1.pdf"
	if !p.HasPDF() {
		t.Error("HasPDF() = false with a path set")
	}
}
