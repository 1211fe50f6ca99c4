package routehandlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/coreybb/newsflash/datastore"
	"github.com/coreybb/newsflash/models"
	"github.com/coreybb/newsflash/webutil"
)

type SourceHandler struct {
	Store datastore.Store
	Feed  datastore.Subscriber
}

func NewSourceHandler(store datastore.Store, feed datastore.Subscriber) *SourceHandler {
	return &SourceHandler{Store: store, Feed: feed}
}

// createSourceRequest is the manual-add form: the user supplies everything,
// no model call is made.
type createSourceRequest struct {
	Title        string          `json:"title"`
	Content      string          `json:"content,omitempty"`
	Summary      string          `json:"summary"`
	Category     models.Category `json:"category"`
	Circle       models.Circle   `json:"circle,omitempty"`
	URL          string          `json:"url,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Contributor  string          `json:"contributor,omitempty"`
	IsBookmarked bool            `json:"is_bookmarked,omitempty"`
}

func (h *SourceHandler) HandleCreateSource(w http.ResponseWriter, r *http.Request) error {
	var req createSourceRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	newSource := models.Source{
		Title:        req.Title,
		Content:      req.Content,
		Summary:      req.Summary,
		Category:     req.Category,
		Circle:       req.Circle,
		URL:          req.URL,
		ImageURL:     req.ImageURL,
		Contributor:  req.Contributor,
		IsBookmarked: req.IsBookmarked,
	}

	// Append enforces the persistence invariants (title/summary present,
	// category a valid enum member) and assigns id + createdAt.
	id, err := h.Store.Append(r.Context(), &newSource)
	if err != nil {
		return err
	}

	log.Printf("INFO: Source created manually: ID=%s, Title=%q", id, newSource.Title)
	webutil.RespondWithJSON(w, http.StatusCreated, newSource)
	return nil
}

func (h *SourceHandler) HandleGetSources(w http.ResponseWriter, r *http.Request) error {
	sources, err := h.Store.List(r.Context())
	if err != nil {
		return err
	}

	webutil.RespondWithJSON(w, http.StatusOK, sources)
	return nil
}

// HandleStreamSources serves the live feed as Server-Sent Events: one event
// per snapshot, the current full set first, newest-first within each event.
// The stream ends when the client disconnects.
func (h *SourceHandler) HandleStreamSources(w http.ResponseWriter, r *http.Request) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return webutil.ErrInternalServer("Streaming is not supported")
	}

	snapshots, err := h.Feed.Subscribe(r.Context())
	if err != nil {
		return err
	}

	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeEventStream)
	w.Header().Set(webutil.HeaderCacheControl, "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for snapshot := range snapshots {
		payload, err := json.Marshal(snapshot)
		if err != nil {
			log.Printf("ERROR: Failed to marshal feed snapshot: %v", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			// Client went away; the ctx-done cleanup in Subscribe unregisters us.
			return nil
		}
		flusher.Flush()
	}
	return nil
}
