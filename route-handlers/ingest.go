package routehandlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/coreybb/newsflash/actions"
	"github.com/coreybb/newsflash/webutil"
)

const bearerPrefix = "Bearer "

// IngestHandler is the machine-ingestion endpoint: callers authenticate with
// a bearer token compared against the server-held secret. An unconfigured
// secret disables the endpoint with an explicit 500 — never a silent bypass.
type IngestHandler struct {
	Actions *actions.Actions
	APIKey  string
}

func NewIngestHandler(a *actions.Actions, apiKey string) *IngestHandler {
	return &IngestHandler{Actions: a, APIKey: apiKey}
}

type ingestRequest struct {
	DocumentContent string `json:"documentContent"`
	URL             string `json:"url,omitempty"`
}

type ingestResponseSource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type ingestResponse struct {
	Message string               `json:"message"`
	Source  ingestResponseSource `json:"source"`
}

func (h *IngestHandler) HandleIngest(w http.ResponseWriter, r *http.Request) error {
	if h.APIKey == "" {
		return webutil.ErrInternalServer("Server is not configured for ingestion. Missing INGEST_API_KEY.")
	}

	auth := r.Header.Get(webutil.HeaderAuthorization)
	if !strings.HasPrefix(auth, bearerPrefix) ||
		subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(auth, bearerPrefix)), []byte(h.APIKey)) != 1 {
		return webutil.ErrUnauthorized("")
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if req.DocumentContent == "" {
		return webutil.ErrBadRequest("documentContent is required")
	}

	source, err := h.Actions.Ingest(r.Context(), actions.IngestInput{
		Content: req.DocumentContent,
		URL:     req.URL,
	})
	if err != nil {
		return err
	}

	webutil.RespondWithJSON(w, http.StatusCreated, ingestResponse{
		Message: "Source ingested successfully",
		Source: ingestResponseSource{
			ID:       source.ID,
			Title:    source.Title,
			Category: string(source.Category),
		},
	})
	return nil
}
