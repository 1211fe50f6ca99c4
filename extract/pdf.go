package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/coreybb/newsflash/apperrors"
	"github.com/ledongthuc/pdf"
)

// extractPDF parses the document page by page and concatenates page text in
// page order, joining text fragments with single spaces.
func extractPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed xref tables instead of returning an
	// error; treat a panic the same as a parse failure.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperrors.NewExtractionError(apperrors.ExtractionCorruptPDF, fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewExtractionError(apperrors.ExtractionCorruptPDF, err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		var fragments []string
		for _, t := range page.Content().Text {
			if s := strings.TrimSpace(t.S); s != "" {
				fragments = append(fragments, s)
			}
		}
		if len(fragments) > 0 {
			pages = append(pages, strings.Join(fragments, " "))
		}
	}

	if len(pages) == 0 {
		return "", apperrors.NewExtractionError(apperrors.ExtractionEmptyResult, nil)
	}
	return strings.Join(pages, "\n\n"), nil
}
