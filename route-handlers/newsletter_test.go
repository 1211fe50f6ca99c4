package routehandlers

import (
	"net/http"
	"testing"

	"github.com/coreybb/newsflash/conversion"
	"github.com/coreybb/newsflash/ebook"
	"github.com/coreybb/newsflash/webutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleExportNewsletter(t *testing.T) {
	h := NewNewsletterHandler(conversion.NewConverter(), ebook.NewNewsletterGenerator())

	rec := doJSON(t, h.HandleExportNewsletter, http.MethodPost, "/api/newsletters/export",
		`{"newsletterTitle":"August Update","draftMarkdown":"# August Update\n\nThe quarter in review."}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, webutil.ContentTypeEPUB, rec.Header().Get(webutil.HeaderContentType))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".epub")
	assert.NotZero(t, rec.Body.Len())

	// An EPUB is a zip container; the magic bytes are stable regardless of
	// which renderer produced the HTML.
	assert.Equal(t, "PK", rec.Body.String()[:2])
}

func TestHandleExportNewsletterRequiresDraft(t *testing.T) {
	h := NewNewsletterHandler(conversion.NewConverter(), ebook.NewNewsletterGenerator())

	rec := doJSON(t, h.HandleExportNewsletter, http.MethodPost, "/api/newsletters/export",
		`{"newsletterTitle":"August Update"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "draftMarkdown is required")
}
