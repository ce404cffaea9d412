// ABOUTME: PDF page text extraction for the filesystem document provider
// ABOUTME: One Page per PDF page, empty pages dropped
package docs

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

func readPDF(path string) ([]Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var pages []Page
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extracting page %d of %s: %w", num, path, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		n := num
		pages = append(pages, Page{Number: &n, Text: text})
	}

	return pages, nil
}
