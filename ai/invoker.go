// Package ai wraps each model operation with a callable flow: fill the
// operation's prompt template, invoke the model once, parse and validate the
// structured output, and return either a typed result or a typed
// *apperrors.AIError. No retries, no caching, exactly one outbound call per
// invocation.
package ai

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
)

// Invoker is the surface the aggregation actions call. The concrete
// implementation is GeminiInvoker; tests substitute a fake.
type Invoker interface {
	Summarize(ctx context.Context, req SummarizeRequest) (SummarizeResponse, error)
	Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error)
	Draft(ctx context.Context, req DraftRequest) (DraftResponse, error)
	Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error)
}

// operation binds a named flow to its prompt template and output schema.
type operation struct {
	name   string
	tmpl   *template.Template
	schema *genai.Schema
}

var (
	opSummarize = &operation{name: "summarizeLongInput", tmpl: summarizeTemplate, schema: summarizeOutputSchema}
	opAnswer    = &operation{name: "answerQuestionsAboutContent", tmpl: answerTemplate, schema: answerOutputSchema}
	opDraft     = &operation{name: "generateNewsletterDraft", tmpl: draftTemplate, schema: draftOutputSchema}
	opClassify  = &operation{name: "processDocumentSource", tmpl: classifyTemplate, schema: classifyOutputSchema}
)

// render fills the operation's template with the request fields.
func (op *operation) render(req any) (string, error) {
	var sb strings.Builder
	if err := op.tmpl.Execute(&sb, req); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", op.name, err)
	}
	return sb.String(), nil
}

// validator is implemented by every response type; generate runs it after
// unmarshalling so a structurally valid but semantically empty payload still
// counts as malformed output.
type validator interface {
	validate() error
}
