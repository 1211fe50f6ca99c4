// Package ebook packages a rendered newsletter draft as an EPUB.
package ebook

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	epub "github.com/go-shiori/go-epub"
)

var imgSrcRegex = regexp.MustCompile(`<img([^>]*)\ssrc=["']([^"']+)["']([^>]*)>`)

const defaultAuthor = "NewsFlash"

// NewsletterGenerator turns newsletter HTML into a downloadable EPUB file.
type NewsletterGenerator struct{}

func NewNewsletterGenerator() *NewsletterGenerator {
	return &NewsletterGenerator{}
}

// Generate writes <outputDir>/<draftID>.epub containing the newsletter HTML
// as a single section, with any externally hosted images embedded.
func (g *NewsletterGenerator) Generate(
	ctx context.Context,
	title string,
	htmlContent string,
	outputDir string,
	draftID string,
) (generatedFilePath string, fileSize int64, err error) {

	if outputDir == "" {
		return "", 0, fmt.Errorf("output directory cannot be empty")
	}
	if draftID == "" {
		return "", 0, fmt.Errorf("draft ID cannot be empty")
	}
	if title == "" {
		title = "Newsletter Draft"
	}

	startTime := time.Now()

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create epub: %w", err)
	}
	e.SetAuthor(defaultAuthor)
	e.SetLang("en")

	htmlContent = embedImages(e, htmlContent)

	if _, err = e.AddSection(htmlContent, title, "", ""); err != nil {
		return "", 0, fmt.Errorf("failed to add section to epub: %w", err)
	}

	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	fullOutputFilePath := filepath.Join(outputDir, draftID+".epub")
	if err = e.Write(fullOutputFilePath); err != nil {
		return "", 0, fmt.Errorf("failed to write epub file: %w", err)
	}

	stat, err := os.Stat(fullOutputFilePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat output file '%s': %w", fullOutputFilePath, err)
	}

	log.Printf("INFO (NewsletterGenerator): Generated EPUB for draft %s: %s (Size: %d bytes, Took: %s)",
		draftID, fullOutputFilePath, stat.Size(), time.Since(startTime))

	return fullOutputFilePath, stat.Size(), nil
}

// embedImages finds all <img> tags with externally hosted URLs and embeds
// them in the EPUB. Data URIs (the common case for uploaded images) already
// travel with the document and pass through untouched.
func embedImages(e *epub.Epub, html string) string {
	imageCount := 0

	result := imgSrcRegex.ReplaceAllStringFunc(html, func(match string) string {
		submatches := imgSrcRegex.FindStringSubmatch(match)
		if len(submatches) < 4 {
			return match
		}

		srcURL := submatches[2]
		if strings.HasPrefix(srcURL, "data:") {
			return match
		}
		if !strings.HasPrefix(srcURL, "http://") && !strings.HasPrefix(srcURL, "https://") {
			return match
		}

		imageCount++
		internalName := fmt.Sprintf("image-%03d", imageCount)

		embeddedPath, err := e.AddImage(srcURL, internalName)
		if err != nil {
			log.Printf("WARN (NewsletterGenerator): Failed to embed image %s: %v", srcURL, err)
			return match
		}

		return fmt.Sprintf(`<img%s src="%s"%s>`, submatches[1], embeddedPath, submatches[3])
	})

	if imageCount > 0 {
		log.Printf("INFO (NewsletterGenerator): Embedded %d images in EPUB", imageCount)
	}

	return result
}
