package parser

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageText is the extracted text of one document page.
type PageText struct {
	Number int
	Text   string
}

// ExtractPages extracts per-page plain text from a PDF file, in page order.
// Pages with no extractable text are skipped. maxPages > 0 caps the number
// of pages read (used by the reduced-scope test mode).
func ExtractPages(filePath string, maxPages int) ([]PageText, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	if maxPages > 0 && total > maxPages {
		total = maxPages
	}

	var pages []PageText
	for num := 1; num <= total; num++ {
		page := r.Page(num)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", num, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, PageText{Number: num, Text: text})
	}

	return pages, nil
}
