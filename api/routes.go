package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	rh "github.com/coreybb/newsflash/route-handlers"
	"github.com/coreybb/newsflash/webutil"
)

const (
	apiBasePath         = "/api"
	sourcesBasePath     = "/sources"
	aiBasePath          = "/ai"
	newslettersBasePath = "/newsletters"

	feedSubPath    = "/feed"
	uploadSubPath  = "/upload"
	extractPath    = "/extract"
	summarizePath  = "/summarize"
	answerPath     = "/answer"
	draftPath      = "/draft"
	exportSubPath  = "/export"
	requestTimeout = 120 * time.Second
)

func SetupRoutes(
	sourceHandler *rh.SourceHandler,
	aiHandler *rh.AIHandler,
	uploadHandler *rh.UploadHandler,
	newsletterHandler *rh.NewsletterHandler,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack. The timeout is generous because every AI route holds
	// the request open across a model call, and the feed route streams.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route(apiBasePath, func(r chi.Router) {
		configureSourceRoutes(r, sourceHandler, uploadHandler)
		configureAIRoutes(r, aiHandler)
		configureNewsletterRoutes(r, newsletterHandler)
		r.Post(extractPath, webutil.MakeHandler(uploadHandler.HandleExtractFile))
	})

	r.Get("/healthz", handleHealthCheck)

	return r
}

func configureSourceRoutes(r chi.Router, sourceHandler *rh.SourceHandler, uploadHandler *rh.UploadHandler) {
	r.Route(sourcesBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(sourceHandler.HandleGetSources))
		r.Post("/", webutil.MakeHandler(sourceHandler.HandleCreateSource))
		r.Get(feedSubPath, webutil.MakeHandler(sourceHandler.HandleStreamSources))
		r.Post(uploadSubPath, webutil.MakeHandler(uploadHandler.HandleUploadSource))
	})
}

func configureAIRoutes(r chi.Router, aiHandler *rh.AIHandler) {
	r.Route(aiBasePath, func(r chi.Router) {
		r.Post(summarizePath, webutil.MakeHandler(aiHandler.HandleSummarize))
		r.Post(answerPath, webutil.MakeHandler(aiHandler.HandleAnswer))
		r.Post(draftPath, webutil.MakeHandler(aiHandler.HandleDraft))
	})
}

func configureNewsletterRoutes(r chi.Router, newsletterHandler *rh.NewsletterHandler) {
	r.Route(newslettersBasePath, func(r chi.Router) {
		r.Post(exportSubPath, webutil.MakeHandler(newsletterHandler.HandleExportNewsletter))
	})
}

func handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
