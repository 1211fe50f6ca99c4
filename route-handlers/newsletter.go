package routehandlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/coreybb/newsflash/conversion"
	"github.com/coreybb/newsflash/ebook"
	"github.com/coreybb/newsflash/webutil"
	"github.com/google/uuid"
)

// NewsletterHandler exports a generated draft as an EPUB download. The draft
// itself is never persisted; the caller supplies the Markdown it received
// from the draft operation.
type NewsletterHandler struct {
	Converter *conversion.Converter
	Generator *ebook.NewsletterGenerator
}

func NewNewsletterHandler(converter *conversion.Converter, generator *ebook.NewsletterGenerator) *NewsletterHandler {
	return &NewsletterHandler{Converter: converter, Generator: generator}
}

type exportNewsletterRequest struct {
	NewsletterTitle string `json:"newsletterTitle"`
	DraftMarkdown   string `json:"draftMarkdown"`
}

func (h *NewsletterHandler) HandleExportNewsletter(w http.ResponseWriter, r *http.Request) error {
	var req exportNewsletterRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if req.DraftMarkdown == "" {
		return webutil.ErrBadRequest("draftMarkdown is required")
	}

	htmlBytes, err := h.Converter.MarkdownToHTML(r.Context(), []byte(req.DraftMarkdown))
	if err != nil {
		return webutil.ErrInternalServerWrap("Failed to render newsletter draft", err)
	}

	outputDir, err := os.MkdirTemp("", "newsflash-epub-")
	if err != nil {
		return webutil.ErrInternalServerWrap("Failed to create export directory", err)
	}
	defer os.RemoveAll(outputDir)

	draftID := uuid.NewString()
	filePath, _, err := h.Generator.Generate(r.Context(), req.NewsletterTitle, string(htmlBytes), outputDir, draftID)
	if err != nil {
		return webutil.ErrInternalServerWrap("Failed to generate EPUB", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return webutil.ErrInternalServerWrap("Failed to read generated EPUB", err)
	}

	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeEPUB)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.epub"`, draftID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return nil
}
