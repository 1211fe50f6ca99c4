package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/coreybb/newsflash/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		fileName    string
		expected    FileType
		wantErr     bool
	}{
		{
			name:        "pdf by content type",
			contentType: "application/pdf",
			fileName:    "report.bin",
			expected:    FileTypePDF,
		},
		{
			name:        "docx by content type",
			contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			fileName:    "notes",
			expected:    FileTypeDOCX,
		},
		{
			name:        "content type with parameters",
			contentType: "text/plain; charset=utf-8",
			fileName:    "notes.unknown",
			expected:    FileTypeTXT,
		},
		{
			name:        "markdown by extension when declared type is generic",
			contentType: "application/octet-stream",
			fileName:    "README.md",
			expected:    FileTypeMD,
		},
		{
			name:        "docx by extension",
			contentType: "",
			fileName:    "minutes.DOCX",
			expected:    FileTypeDOCX,
		},
		{
			name:        "webp image",
			contentType: "image/webp",
			fileName:    "chart.webp",
			expected:    FileTypeWEBP,
		},
		{
			name:        "unsupported type",
			contentType: "application/zip",
			fileName:    "archive.zip",
			wantErr:     true,
		},
		{
			name:        "nothing declared",
			contentType: "",
			fileName:    "mystery",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft, err := DetectFileType(tt.contentType, tt.fileName)
			if tt.wantErr {
				var extractionErr *apperrors.ExtractionError
				require.ErrorAs(t, err, &extractionErr)
				assert.Equal(t, apperrors.ExtractionUnsupportedType, extractionErr.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ft)
		})
	}
}

func TestExtractPlainText(t *testing.T) {
	result, err := Extract([]byte("Q2 review notes"), FileTypeTXT)
	require.NoError(t, err)
	assert.Equal(t, "Q2 review notes", result.Text)
	assert.Empty(t, result.ImageDataURI)
}

func TestExtractMarkdownVerbatim(t *testing.T) {
	md := "# Q2 Review\n\n- shipped dashboard\n- fixed auth latency\n"
	result, err := Extract([]byte(md), FileTypeMD)
	require.NoError(t, err)
	assert.Equal(t, md, result.Text)
}

func TestExtractRejectsInvalidUTF8(t *testing.T) {
	_, err := Extract([]byte{0xff, 0xfe, 0xfd}, FileTypeTXT)

	var extractionErr *apperrors.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, apperrors.ExtractionBadEncoding, extractionErr.Reason)
}

func TestExtractImagePassThrough(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4e, 0x47}
	result, err := Extract(data, FileTypePNG)
	require.NoError(t, err)

	assert.Empty(t, result.Text)
	assert.True(t, strings.HasPrefix(result.ImageDataURI, "data:image/png;base64,"),
		"got %q", result.ImageDataURI)
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := Extract([]byte("definitely not a pdf"), FileTypePDF)

	var extractionErr *apperrors.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, apperrors.ExtractionCorruptPDF, extractionErr.Reason)
}

// buildDOCX assembles a minimal in-memory DOCX with the given paragraphs.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create(docxDocumentPath)
	require.NoError(t, err)
	_, err = f.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	data := buildDOCX(t, "Q2 review", "Engagement up 30% since launch.")

	result, err := Extract(data, FileTypeDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Q2 review\nEngagement up 30% since launch.", result.Text)
}

func TestExtractDOCXCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "not a zip", data: []byte("garbage bytes")},
		{name: "truncated archive", data: buildDOCX(t, "hello")[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.data, FileTypeDOCX)

			var extractionErr *apperrors.ExtractionError
			require.ErrorAs(t, err, &extractionErr)
			assert.Equal(t, apperrors.ExtractionCorruptDOCX, extractionErr.Reason)
		})
	}
}

func TestExtractDOCXMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Extract(buf.Bytes(), FileTypeDOCX)
	var extractionErr *apperrors.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, apperrors.ExtractionCorruptDOCX, extractionErr.Reason)
}

func TestExtractHTML(t *testing.T) {
	page := `<html><head><title>Sprint Review</title></head><body>
		<article>
			<h1>Sprint Review</h1>
			<p>The second quarter saw tremendous progress from the engineering team.
			We successfully launched the new user dashboard, which has received
			positive feedback for its improved performance and user experience.</p>
			<p>Key metrics show a 30% increase in user engagement since the launch.</p>
		</article>
	</body></html>`

	result, err := Extract([]byte(page), FileTypeHTML)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "tremendous progress")
	assert.Contains(t, result.Text, "30% increase")
	assert.NotContains(t, result.Text, "<p>", "markup must be stripped")
}

func TestExtractHTMLEmpty(t *testing.T) {
	_, err := Extract([]byte("<html><body></body></html>"), FileTypeHTML)

	var extractionErr *apperrors.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, apperrors.ExtractionEmptyResult, extractionErr.Reason)
}
