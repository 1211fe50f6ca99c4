// Package actions holds the aggregation actions: one thin orchestrator per
// user-facing capability, composing extractor output, the AI invoker, and the
// source store. Preconditions fail with a ValidationError before any model
// call; a failure at any step propagates as-is — no retries, no recovery.
package actions

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/coreybb/newsflash/ai"
	"github.com/coreybb/newsflash/apperrors"
	"github.com/coreybb/newsflash/datastore"
	"github.com/coreybb/newsflash/models"
)

type Actions struct {
	invoker ai.Invoker
	store   datastore.Store
}

func New(invoker ai.Invoker, store datastore.Store) *Actions {
	return &Actions{invoker: invoker, store: store}
}

// Summarize reduces long content (plus an optional image reference) to a
// short summary. Read-only: it never touches the store.
func (a *Actions) Summarize(ctx context.Context, content, imageURL string) (string, error) {
	if content == "" && imageURL == "" {
		return "", apperrors.NewValidationError("content", apperrors.ValidationMissingField)
	}

	res, err := a.invoker.Summarize(ctx, ai.SummarizeRequest{Content: content, ImageURL: imageURL})
	if err != nil {
		return "", err
	}
	return res.Summary, nil
}

// Answer produces a natural-language answer from a question plus the
// concatenated corpus. Assembling the corpus is the caller's responsibility.
func (a *Actions) Answer(ctx context.Context, question, corpus string) (ai.AnswerResponse, error) {
	if question == "" {
		return ai.AnswerResponse{}, apperrors.NewValidationError("question", apperrors.ValidationMissingField)
	}
	if corpus == "" {
		return ai.AnswerResponse{}, apperrors.NewValidationError("content", apperrors.ValidationMissingField)
	}

	return a.invoker.Answer(ctx, ai.AnswerRequest{Question: question, Content: corpus})
}

// Draft composes the selected items into one newsletter document in Markdown.
func (a *Actions) Draft(ctx context.Context, items []models.NewsletterItem, title string) (string, error) {
	if len(items) == 0 {
		return "", apperrors.NewValidationError("selectedContent", apperrors.ValidationMissingField)
	}
	if title == "" {
		return "", apperrors.NewValidationError("newsletterTitle", apperrors.ValidationMissingField)
	}

	res, err := a.invoker.Draft(ctx, ai.DraftRequest{SelectedContent: items, NewsletterTitle: title})
	if err != nil {
		return "", err
	}
	return res.DraftNewsletter, nil
}

// IngestInput carries already-extracted content into the classify+persist
// pipeline. Everything but Content/ImageURL is optional passthrough.
type IngestInput struct {
	Content     string
	ImageURL    string
	URL         string
	Contributor string
}

// Ingest classifies the content and appends the resulting Source. The stored
// record is returned with its assigned id and createdAt.
func (a *Actions) Ingest(ctx context.Context, in IngestInput) (*models.Source, error) {
	if in.Content == "" && in.ImageURL == "" {
		return nil, apperrors.NewValidationError("documentContent", apperrors.ValidationMissingField)
	}

	classified, err := a.invoker.Classify(ctx, ai.ClassifyRequest{
		DocumentContent: in.Content,
		ImageURL:        in.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	source := &models.Source{
		Title:       classified.Title,
		Content:     in.Content,
		Summary:     classified.Summary,
		Category:    classified.Category,
		Circle:      classified.Circle,
		URL:         in.URL,
		ImageURL:    in.ImageURL,
		Contributor: in.Contributor,
	}

	id, err := a.store.Append(ctx, source)
	if err != nil {
		return nil, err
	}

	log.Printf("INFO (Actions): Source ingested: ID=%s, Title=%q, Category=%s", id, source.Title, source.Category)
	return source, nil
}

// CorpusFromSources concatenates every source's title, content, and
// references into the repository text the Answer operation reads from.
func CorpusFromSources(sources []models.Source) string {
	var sb strings.Builder
	for _, src := range sources {
		fmt.Fprintf(&sb, "Title: %s\n", src.Title)
		if src.Content != "" {
			fmt.Fprintf(&sb, "Content: %s\n", src.Content)
		} else if src.Summary != "" {
			fmt.Fprintf(&sb, "Content: %s\n", src.Summary)
		}
		if src.URL != "" {
			fmt.Fprintf(&sb, "URL: %s\n", src.URL)
		}
		if src.ImageURL != "" {
			fmt.Fprintf(&sb, "imageUrl: %s\n", src.ImageURL)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
