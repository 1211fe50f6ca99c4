package models

// NewsletterItem is one selected Source reduced to the triple the draft
// operation composes from.
type NewsletterItem struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Category Category `json:"category"`
}

// NewsletterDraft is a generated, not-yet-published newsletter document.
// Drafts are ephemeral: they are returned to the caller and never persisted.
type NewsletterDraft struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}
