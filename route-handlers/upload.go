package routehandlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/coreybb/newsflash/actions"
	"github.com/coreybb/newsflash/extract"
	"github.com/coreybb/newsflash/webutil"
)

const (
	// maxUploadBytes caps the file itself; the extractor assumes its caller
	// enforces this.
	maxUploadBytes = 1 << 20

	// multipart framing overhead on top of the file cap.
	maxRequestBytes = maxUploadBytes + 64*1024

	formFieldFile        = "file"
	formFieldURL         = "url"
	formFieldContributor = "contributor"
)

// UploadHandler runs the full ingestion pipeline for browser uploads
// (extract → classify → append) and also serves the bare file-parsing proxy
// used by the form's preview step.
type UploadHandler struct {
	Actions *actions.Actions
}

func NewUploadHandler(a *actions.Actions) *UploadHandler {
	return &UploadHandler{Actions: a}
}

// readUploadedFile pulls the single expected file out of the multipart form
// and resolves its declared type.
func readUploadedFile(w http.ResponseWriter, r *http.Request) ([]byte, extract.FileType, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxRequestBytes); err != nil {
		return nil, "", webutil.ErrBadRequest("Invalid multipart form: " + err.Error())
	}

	file, header, err := r.FormFile(formFieldFile)
	if err != nil {
		return nil, "", webutil.ErrBadRequest("No file provided")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, "", webutil.ErrBadRequest("File exceeds the 1 MB limit")
	}

	fileType, err := extract.DetectFileType(header.Header.Get(webutil.HeaderContentType), header.Filename)
	if err != nil {
		return nil, "", err
	}
	return data, fileType, nil
}

// HandleUploadSource ingests an uploaded document end to end and returns the
// stored Source.
func (h *UploadHandler) HandleUploadSource(w http.ResponseWriter, r *http.Request) error {
	data, fileType, err := readUploadedFile(w, r)
	if err != nil {
		return err
	}

	extracted, err := extract.Extract(data, fileType)
	if err != nil {
		return err
	}

	source, err := h.Actions.Ingest(r.Context(), actions.IngestInput{
		Content:     extracted.Text,
		ImageURL:    extracted.ImageDataURI,
		URL:         r.FormValue(formFieldURL),
		Contributor: r.FormValue(formFieldContributor),
	})
	if err != nil {
		return err
	}

	webutil.RespondWithJSON(w, http.StatusCreated, source)
	return nil
}

// HandleExtractFile is the file-parsing proxy: it extracts and returns the
// text without classifying or persisting anything.
func (h *UploadHandler) HandleExtractFile(w http.ResponseWriter, r *http.Request) error {
	data, fileType, err := readUploadedFile(w, r)
	if err != nil {
		return err
	}

	extracted, err := extract.Extract(data, fileType)
	if err != nil {
		return err
	}

	log.Printf("INFO: Extracted %d bytes of text from %s upload", len(extracted.Text), fileType)
	resp := map[string]string{"text": extracted.Text}
	if extracted.ImageDataURI != "" {
		resp["imageUrl"] = extracted.ImageDataURI
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
	return nil
}
