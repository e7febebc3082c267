package resume

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls plain text out of an uploaded resume. PDFs go
// through the pdf reader; anything else is treated as UTF-8 text.
func ExtractText(data []byte, contentType string) (string, error) {
	if contentType == "application/pdf" || bytes.HasPrefix(data, []byte("%PDF")) {
		return extractPDF(data)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("unsupported resume encoding (content type %q)", contentType)
	}
	return string(data), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
