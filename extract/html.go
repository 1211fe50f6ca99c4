package extract

import (
	"log"
	"net/url"
	"strings"

	"github.com/coreybb/newsflash/apperrors"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy cleans markup before main-content extraction; stripTagsPolicy
// reduces the fallback HTML to plain text when Readability yields nothing.
var (
	htmlPolicy      = bluemonday.UGCPolicy()
	stripTagsPolicy = bluemonday.StripTagsPolicy()

	// Readability resolves relative links against a base URL; uploads have
	// none, so a placeholder is enough.
	placeholderBase = &url.URL{Scheme: "http", Host: "localhost"}
)

// extractHTML sanitizes the markup and extracts the main article text. When
// Readability cannot find an article body, the sanitized document is stripped
// to plain text instead of failing: an HTML upload with any text at all
// should still produce something classifiable.
func extractHTML(data []byte) (Result, error) {
	cleaned := htmlPolicy.Sanitize(string(data))

	article, err := readability.FromReader(strings.NewReader(cleaned), placeholderBase)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return Result{
			Text:  strings.TrimSpace(article.TextContent),
			Title: article.Title,
		}, nil
	}
	if err != nil {
		log.Printf("WARN (extract): readability extraction failed, falling back to stripped HTML: %v", err)
	}

	text := strings.TrimSpace(stripTagsPolicy.Sanitize(cleaned))
	if text == "" {
		return Result{}, apperrors.NewExtractionError(apperrors.ExtractionEmptyResult, nil)
	}
	return Result{Text: text}, nil
}
