package pdftext

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.pdf"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestExtractRejectsNonPDFContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("plain text, not a pdf"), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := Extract(path); err == nil {
		t.Fatalf("expected an error for non-pdf content")
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := normalize("  Amina   Diallo \n\n\t\n Backend   engineer  ")
	want := "Amina Diallo\nBackend engineer"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := normalize(" \n \t \n"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if strings.TrimSpace(normalize("")) != "" {
		t.Fatalf("expected empty output for empty input")
	}
}
