package ai

import (
	"testing"

	"github.com/coreybb/newsflash/models"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSummarizePrompt(t *testing.T) {
	prompt, err := opSummarize.render(SummarizeRequest{Content: "Quarterly revenue grew 12%."})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Quarterly revenue grew 12%.")
	assert.NotContains(t, prompt, "An image accompanies this content",
		"image block must be omitted when no image is supplied")
}

func TestRenderSummarizePromptWithImage(t *testing.T) {
	prompt, err := opSummarize.render(SummarizeRequest{
		Content:  "Quarterly revenue grew 12%.",
		ImageURL: "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "An image accompanies this content")
	assert.Contains(t, prompt, "data:image/png;base64,AAAA")
}

func TestRenderAnswerPrompt(t *testing.T) {
	prompt, err := opAnswer.render(AnswerRequest{
		Question: "Where can I find the onboarding guide?",
		Content:  "Title: Onboarding Guide\nURL: https://example.com/guide",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Question: Where can I find the onboarding guide?")
	assert.Contains(t, prompt, "https://example.com/guide")
}

func TestRenderDraftPromptListsEverySelectedItem(t *testing.T) {
	prompt, err := opDraft.render(DraftRequest{
		NewsletterTitle: "August Update",
		SelectedContent: []models.NewsletterItem{
			{Title: "Dashboard Launch", Summary: "Shipped the new dashboard.", Category: models.CategoryWins},
			{Title: "Auth Latency", Summary: "Login slowed under load.", Category: models.CategoryChallenges},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, `the title "August Update"`)
	assert.Contains(t, prompt, "**Title:** Dashboard Launch")
	assert.Contains(t, prompt, "**Summary:** Login slowed under load.")
	assert.Contains(t, prompt, "**Category:** challenges")
}

func TestClassifyPromptEmbedsEnumerations(t *testing.T) {
	prompt, err := opClassify.render(ClassifyRequest{DocumentContent: "Meeting minutes."})
	require.NoError(t, err)

	for _, c := range models.Categories {
		assert.Contains(t, prompt, string(c))
	}
	for _, c := range models.Circles {
		assert.Contains(t, prompt, string(c))
	}
	assert.NotContains(t, prompt, "An image accompanies this document")
}

func TestResponseValidators(t *testing.T) {
	tests := []struct {
		name    string
		resp    validator
		wantErr bool
	}{
		{name: "summary present", resp: &SummarizeResponse{Summary: "ok"}},
		{name: "summary blank", resp: &SummarizeResponse{Summary: "  "}, wantErr: true},
		{name: "answer present", resp: &AnswerResponse{Answer: "yes"}},
		{name: "answer blank", resp: &AnswerResponse{}, wantErr: true},
		{name: "draft present", resp: &DraftResponse{DraftNewsletter: "# Title"}},
		{name: "draft blank", resp: &DraftResponse{}, wantErr: true},
		{
			name: "classification complete",
			resp: &ClassifyResponse{
				Title:    "Q2 Review",
				Summary:  "A review of the quarter.",
				Category: models.CategoryWins,
				Circle:   models.CircleAnalytics,
			},
		},
		{
			name:    "classification missing title",
			resp:    &ClassifyResponse{Summary: "s", Category: models.CategoryWins, Circle: models.CircleAnalytics},
			wantErr: true,
		},
		{
			name:    "classification unknown category",
			resp:    &ClassifyResponse{Title: "t", Summary: "s", Category: "gossip", Circle: models.CircleAnalytics},
			wantErr: true,
		},
		{
			name:    "classification unknown circle",
			resp:    &ClassifyResponse{Title: "t", Summary: "s", Category: models.CategoryWins, Circle: "Finance"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassifyOutputSchemaMatchesEnumerations(t *testing.T) {
	category := classifyOutputSchema.Properties["category"]
	require.NotNil(t, category)
	assert.ElementsMatch(t, categoryEnumValues(), category.Enum)

	circle := classifyOutputSchema.Properties["circle"]
	require.NotNil(t, circle)
	assert.ElementsMatch(t, circleEnumValues(), circle.Enum)

	assert.ElementsMatch(t, []string{"title", "summary", "category", "circle"}, classifyOutputSchema.Required)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []genai.Part{genai.Text(`{"summary":`), genai.Text(`"split across parts"}`)},
			},
		}},
	}
	assert.Equal(t, `{"summary":"split across parts"}`, responseText(resp))

	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}
