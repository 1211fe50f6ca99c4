package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/coreybb/newsflash/apperrors"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModelName = "gemini-2.0-flash"

// GeminiInvoker invokes the hosted Gemini model with structured-output
// schemas. One client is shared across operations; each call builds a fresh
// generation config so operations never leak settings into each other.
type GeminiInvoker struct {
	client    *genai.Client
	modelName string
}

func NewGeminiInvoker(ctx context.Context, apiKey, modelName string) (*GeminiInvoker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = defaultModelName
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiInvoker{client: client, modelName: modelName}, nil
}

func (g *GeminiInvoker) Close() error {
	return g.client.Close()
}

func (g *GeminiInvoker) Summarize(ctx context.Context, req SummarizeRequest) (SummarizeResponse, error) {
	var out SummarizeResponse
	if err := g.generate(ctx, opSummarize, req, &out); err != nil {
		return SummarizeResponse{}, err
	}
	return out, nil
}

func (g *GeminiInvoker) Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error) {
	var out AnswerResponse
	if err := g.generate(ctx, opAnswer, req, &out); err != nil {
		return AnswerResponse{}, err
	}
	return out, nil
}

func (g *GeminiInvoker) Draft(ctx context.Context, req DraftRequest) (DraftResponse, error) {
	var out DraftResponse
	if err := g.generate(ctx, opDraft, req, &out); err != nil {
		return DraftResponse{}, err
	}
	return out, nil
}

func (g *GeminiInvoker) Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error) {
	var out ClassifyResponse
	if err := g.generate(ctx, opClassify, req, &out); err != nil {
		return ClassifyResponse{}, err
	}
	return out, nil
}

// generate performs the single outbound model call for one operation and
// parses the response into out. Every failure past rendering comes back as a
// typed *apperrors.AIError.
func (g *GeminiInvoker) generate(ctx context.Context, op *operation, req any, out validator) error {
	prompt, err := op.render(req)
	if err != nil {
		return err
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = op.schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return apperrors.NewAIError(apperrors.AITimeout, err)
		}
		log.Printf("ERROR (GeminiInvoker): %s call failed: %v", op.name, err)
		return apperrors.NewAIError(apperrors.AIModelUnavailable, err)
	}

	payload := responseText(resp)
	if payload == "" {
		return apperrors.NewAIError(apperrors.AIMalformedOutput, fmt.Errorf("%s returned no candidates", op.name))
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return apperrors.NewAIError(apperrors.AIMalformedOutput, fmt.Errorf("%s output did not parse: %w", op.name, err))
	}
	if err := out.validate(); err != nil {
		return apperrors.NewAIError(apperrors.AIMalformedOutput, fmt.Errorf("%s output failed validation: %w", op.name, err))
	}
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
