package ai

import (
	"fmt"
	"strings"

	"github.com/coreybb/newsflash/models"
	"github.com/google/generative-ai-go/genai"
)

// Request/response pairs are ephemeral: they exist for the duration of one
// invocation and are never persisted. The response types double as the output
// contract — the model's payload must unmarshal into them and pass validate();
// anything else is a malformed output, never silently coerced.

type SummarizeRequest struct {
	Content  string
	ImageURL string // optional data URI or hosted reference
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

func (r *SummarizeResponse) validate() error {
	if strings.TrimSpace(r.Summary) == "" {
		return fmt.Errorf("summary is empty")
	}
	return nil
}

type AnswerRequest struct {
	Question string
	Content  string // concatenated corpus, assembled by the caller
}

type AnswerResponse struct {
	Answer   string `json:"answer"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (r *AnswerResponse) validate() error {
	if strings.TrimSpace(r.Answer) == "" {
		return fmt.Errorf("answer is empty")
	}
	return nil
}

type DraftRequest struct {
	SelectedContent []models.NewsletterItem
	NewsletterTitle string
}

type DraftResponse struct {
	DraftNewsletter string `json:"draftNewsletter"`
}

func (r *DraftResponse) validate() error {
	if strings.TrimSpace(r.DraftNewsletter) == "" {
		return fmt.Errorf("draft is empty")
	}
	return nil
}

type ClassifyRequest struct {
	DocumentContent string
	ImageURL        string // optional data URI or hosted reference
}

type ClassifyResponse struct {
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Category models.Category `json:"category"`
	Circle   models.Circle   `json:"circle"`
}

func (r *ClassifyResponse) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is empty")
	}
	if strings.TrimSpace(r.Summary) == "" {
		return fmt.Errorf("summary is empty")
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("category %q is not a member of the category enumeration", r.Category)
	}
	if !r.Circle.IsValid() {
		return fmt.Errorf("circle %q is not a member of the circle enumeration", r.Circle)
	}
	return nil
}

func categoryEnumValues() []string {
	values := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		values[i] = string(c)
	}
	return values
}

func circleEnumValues() []string {
	values := make([]string, len(models.Circles))
	for i, c := range models.Circles {
		values[i] = string(c)
	}
	return values
}

// Output schemas handed to the model so it answers in the declared shape.
// Validation still runs locally after parsing: the schema is a request, the
// validators are the contract.
var (
	summarizeOutputSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "A detailed summary of the input content that captures all necessary information.",
			},
		},
		Required: []string{"summary"},
	}

	answerOutputSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"answer": {
				Type:        genai.TypeString,
				Description: "The answer to the question based on the content.",
			},
			"imageUrl": {
				Type:        genai.TypeString,
				Description: "The URL of the most relevant image from the content repository, if applicable.",
			},
		},
		Required: []string{"answer"},
	}

	draftOutputSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"draftNewsletter": {
				Type:        genai.TypeString,
				Description: "The generated draft newsletter in Markdown format.",
			},
		},
		Required: []string{"draftNewsletter"},
	}

	classifyOutputSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "A concise and descriptive title for the document.",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A detailed summary that captures all the necessary and key information from the document.",
			},
			"category": {
				Type:        genai.TypeString,
				Format:      "enum",
				Enum:        categoryEnumValues(),
				Description: "The most relevant category for the document.",
			},
			"circle": {
				Type:        genai.TypeString,
				Format:      "enum",
				Enum:        circleEnumValues(),
				Description: "The most relevant circle for the document.",
			},
		},
		Required: []string{"title", "summary", "category", "circle"},
	}
)
