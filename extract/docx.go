package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/coreybb/newsflash/apperrors"
)

const docxDocumentPath = "word/document.xml"

// extractDOCX pulls the raw text out of a DOCX archive, discarding all
// formatting. A DOCX is a zip whose word/document.xml holds the text as
// <w:t> runs grouped into <w:p> paragraphs.
func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewExtractionError(apperrors.ExtractionCorruptDOCX, err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == docxDocumentPath {
			document = f
			break
		}
	}
	if document == nil {
		return "", apperrors.NewExtractionError(apperrors.ExtractionCorruptDOCX,
			fmt.Errorf("archive is missing %s", docxDocumentPath))
	}

	rc, err := document.Open()
	if err != nil {
		return "", apperrors.NewExtractionError(apperrors.ExtractionCorruptDOCX, err)
	}
	defer rc.Close()

	text, err := documentXMLToText(rc)
	if err != nil {
		return "", apperrors.NewExtractionError(apperrors.ExtractionCorruptDOCX, err)
	}
	if text == "" {
		return "", apperrors.NewExtractionError(apperrors.ExtractionEmptyResult, nil)
	}
	return text, nil
}

func documentXMLToText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inRun := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inRun {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
