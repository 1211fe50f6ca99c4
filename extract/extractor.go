// Package extract converts uploaded files into plain text (or, for images, a
// self-describing data URI). It is a pure transformation: no side effects, and
// every failure is a typed *apperrors.ExtractionError. Size limiting is the
// caller's job.
package extract

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/coreybb/newsflash/apperrors"
	"github.com/vincent-petithory/dataurl"
)

// FileType is the set of declared input types the extractor accepts.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
	FileTypeMD   FileType = "md"
	FileTypeHTML FileType = "html"
	FileTypeJPEG FileType = "jpeg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
)

// IsImage reports whether the type passes through as a data URI instead of
// being reduced to text.
func (ft FileType) IsImage() bool {
	switch ft {
	case FileTypeJPEG, FileTypePNG, FileTypeWEBP:
		return true
	default:
		return false
	}
}

// mimeType returns the media type used when re-encoding an image input.
func (ft FileType) mimeType() string {
	switch ft {
	case FileTypeJPEG:
		return "image/jpeg"
	case FileTypePNG:
		return "image/png"
	case FileTypeWEBP:
		return "image/webp"
	default:
		return ""
	}
}

var typesByContentType = map[string]FileType{
	"application/pdf": FileTypePDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FileTypeDOCX,
	"text/plain":    FileTypeTXT,
	"text/markdown": FileTypeMD,
	"text/html":     FileTypeHTML,
	"image/jpeg":    FileTypeJPEG,
	"image/png":     FileTypePNG,
	"image/webp":    FileTypeWEBP,
}

var typesByExtension = map[string]FileType{
	".pdf":  FileTypePDF,
	".docx": FileTypeDOCX,
	".txt":  FileTypeTXT,
	".text": FileTypeTXT,
	".md":   FileTypeMD,
	".html": FileTypeHTML,
	".htm":  FileTypeHTML,
	".jpg":  FileTypeJPEG,
	".jpeg": FileTypeJPEG,
	".png":  FileTypePNG,
	".webp": FileTypeWEBP,
}

// DetectFileType resolves the declared Content-Type, falling back to the file
// extension when the declared type is generic or absent. An unresolvable input
// yields ExtractionError{unsupported-type}.
func DetectFileType(contentType, fileName string) (FileType, error) {
	base := contentType
	if i := strings.Index(base, ";"); i != -1 {
		base = base[:i]
	}
	base = strings.ToLower(strings.TrimSpace(base))

	if ft, ok := typesByContentType[base]; ok {
		return ft, nil
	}
	if ft, ok := typesByExtension[strings.ToLower(filepath.Ext(fileName))]; ok {
		return ft, nil
	}
	return "", apperrors.NewExtractionError(apperrors.ExtractionUnsupportedType, nil)
}

// Result holds the outcome of one extraction. Exactly one of Text or
// ImageDataURI is populated. Title is set only when the format carries one
// (HTML documents).
type Result struct {
	Text         string
	ImageDataURI string
	Title        string
}

// Extract converts data of the declared type into a Result.
func Extract(data []byte, ft FileType) (Result, error) {
	if ft.IsImage() {
		return Result{ImageDataURI: dataurl.New(data, ft.mimeType()).String()}, nil
	}

	switch ft {
	case FileTypePDF:
		text, err := extractPDF(data)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text}, nil

	case FileTypeDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text}, nil

	case FileTypeTXT, FileTypeMD:
		if !utf8.Valid(data) {
			return Result{}, apperrors.NewExtractionError(apperrors.ExtractionBadEncoding, nil)
		}
		return Result{Text: string(data)}, nil

	case FileTypeHTML:
		return extractHTML(data)

	default:
		return Result{}, apperrors.NewExtractionError(apperrors.ExtractionUnsupportedType, nil)
	}
}
