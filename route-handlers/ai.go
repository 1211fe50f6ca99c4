package routehandlers

import (
	"encoding/json"
	"net/http"

	"github.com/coreybb/newsflash/actions"
	"github.com/coreybb/newsflash/models"
	"github.com/coreybb/newsflash/webutil"
)

// AIHandler exposes the three read-model AI operations. None of them touch
// the store; preconditions and failures come back typed from the actions
// layer and are translated by webutil.MakeHandler.
type AIHandler struct {
	Actions *actions.Actions
}

func NewAIHandler(a *actions.Actions) *AIHandler {
	return &AIHandler{Actions: a}
}

type summarizeRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (h *AIHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) error {
	var req summarizeRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	summary, err := h.Actions.Summarize(r.Context(), req.Content, req.ImageURL)
	if err != nil {
		return err
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"summary": summary})
	return nil
}

type answerRequest struct {
	Question string `json:"question"`
	Content  string `json:"content"`
}

func (h *AIHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) error {
	var req answerRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	answer, err := h.Actions.Answer(r.Context(), req.Question, req.Content)
	if err != nil {
		return err
	}

	resp := map[string]string{"answer": answer.Answer}
	if answer.ImageURL != "" {
		resp["imageUrl"] = answer.ImageURL
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
	return nil
}

type draftRequest struct {
	SelectedContent []models.NewsletterItem `json:"selectedContent"`
	NewsletterTitle string                  `json:"newsletterTitle"`
}

func (h *AIHandler) HandleDraft(w http.ResponseWriter, r *http.Request) error {
	var req draftRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	draft, err := h.Actions.Draft(r.Context(), req.SelectedContent, req.NewsletterTitle)
	if err != nil {
		return err
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"draft": draft})
	return nil
}
