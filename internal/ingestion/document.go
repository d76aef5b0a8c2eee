package ingestion

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nguyenthenguyen/docx"

	"github.com/talentsift/talentsift/internal/models"
)

// MinExtractedTextLength is the minimum text length considered a
// successful PDF extraction.
const MinExtractedTextLength = 50

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
}

// SupportedExtension reports whether the filename carries a document
// extension the pipeline can extract.
func SupportedExtension(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// ReadDocumentText extracts raw text from a PDF, DOCX, DOC, or TXT file.
// An unsupported extension is an UnsupportedFormatError; a supported file
// that cannot be read returns an error the caller may degrade to empty text.
func ReadDocumentText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".txt":
		return readPlainText(path)
	case ".pdf":
		return readPDF(path)
	case ".docx":
		return readDOCX(path)
	case ".doc":
		return readDOC(path)
	default:
		return "", &models.UnsupportedFormatError{Format: ext}
	}
}

func readPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return sanitizeUTF8(string(data)), nil
}

// readPDF extracts text via pdftotext (poppler-utils).
func readPDF(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("PDF extraction requires 'pdftotext' (install poppler-utils): %w", err)
	}

	text := sanitizeUTF8(string(output))
	if len(text) < MinExtractedTextLength {
		return "", fmt.Errorf("extracted text too short, likely a scanned or image-only PDF: %s", path)
	}
	return text, nil
}

var (
	docxParagraphRe = regexp.MustCompile(`</w:p>`)
	docxTagRe       = regexp.MustCompile(`<[^>]+>`)
)

func readDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	// document.xml markup: paragraph ends become newlines, remaining tags drop.
	content = docxParagraphRe.ReplaceAllString(content, "\n")
	content = docxTagRe.ReplaceAllString(content, "")
	return sanitizeUTF8(content), nil
}

// readDOC handles legacy Word documents via antiword.
func readDOC(path string) (string, error) {
	cmd := exec.Command("antiword", path)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("DOC extraction requires 'antiword': %w", err)
	}
	return sanitizeUTF8(string(output)), nil
}

// sanitizeUTF8 drops invalid byte sequences so downstream JSON encoding
// and prompts never see malformed text.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}
