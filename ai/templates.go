package ai

import (
	"fmt"
	"strings"
	"text/template"
)

// Prompt wording is configuration, not code: each operation owns one selected
// template, and the invocation contract (schema in, validated schema out) is
// independent of the prose. Editing a template never changes a data shape.

const summarizePromptText = `Summarize the following content into a detailed summary that is comprehensive and captures all necessary and key information, while still being suitable for a newsletter format.

Content:
{{.Content}}
{{- if .ImageURL}}

An image accompanies this content. Take anything relevant it shows into account:
{{.ImageURL}}
{{- end}}`

const answerPromptText = `You are an AI assistant that answers questions based on a repository of content.
Your task is to synthesize an answer from the provided sources.
If a source has a URL, and the user's question implies they might want a link (e.g., asking "where can I find the document?"), include the URL in your answer.
If a source has an associated image (imageUrl) that is relevant to the user's question, include the imageUrl in your response.

Content Repository:
{{.Content}}

Question: {{.Question}}

Synthesized Answer:`

const draftPromptText = `You are an expert internal communications editor tasked with creating a draft for a company newsletter.
Your goal is to synthesize the provided content into a single, cohesive, and well-organized newsletter document.

**Instructions:**

1.  **Use the provided title:** Start the newsletter with the title "{{.NewsletterTitle}}".
2.  **Group content by category:** Organize the items under clear headings based on their category (e.g., "Key Wins", "Recent Challenges", "Project Updates").
3.  **Format consistently:** For each item, use its title as a sub-heading and its summary as the body paragraph.
4.  **Create a unified document:** Do not create separate newsletters. Combine all selected content into one single draft.
5.  **Output in Markdown:** Use Markdown for formatting (e.g., '#' for the main title, '##' for category headings, '###' for item titles).

**Content to Include:**
{{- range .SelectedContent}}
- **Category:** {{.Category}}
  - **Title:** {{.Title}}
  - **Summary:** {{.Summary}}
{{- end}}

Begin the draft now.`

// The classify prompt embeds the enumerations so the model chooses from the
// same lists the validators enforce.
var classifyPromptText = fmt.Sprintf(`You are an expert at analyzing and categorizing business documents.

Read the following document content, then perform these tasks:
1.  Create a concise, descriptive title for the document.
2.  Write a detailed summary that captures all the necessary and key information.
3.  Assign the most appropriate category from the following list: %s.
4.  Assign the most appropriate circle from the following list: %s.

Document Content:
{{.DocumentContent}}
{{- if .ImageURL}}

An image accompanies this document. Take anything relevant it shows into account:
{{.ImageURL}}
{{- end}}`,
	strings.Join(categoryEnumValues(), ", "),
	strings.Join(circleEnumValues(), ", "))

var (
	summarizeTemplate = template.Must(template.New("summarize").Parse(summarizePromptText))
	answerTemplate    = template.Must(template.New("answer").Parse(answerPromptText))
	draftTemplate     = template.Must(template.New("draft").Parse(draftPromptText))
	classifyTemplate  = template.Must(template.New("classify").Parse(classifyPromptText))
)
