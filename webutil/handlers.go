package webutil

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/coreybb/newsflash/apperrors"
)

// AppHandler represents a handler function that returns an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to http.HandlerFunc, translating returned
// errors into a standardized JSON error response. Typed domain errors map to
// fixed statuses; an explicit *HTTPError wins when a handler chose its own.
func MakeHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			// The handler wrote its own successful response.
			return
		}

		statusCode, publicMessage := classifyError(err)

		logLevel := slog.LevelWarn
		if statusCode >= 500 {
			logLevel = slog.LevelError
		}
		slog.Log(r.Context(), logLevel, "Request failed",
			"code", statusCode,
			"msg", publicMessage,
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
		)

		if HasResponseWriterSentHeader(w) {
			slog.Warn("Handler returned error after writing response header",
				"path", r.URL.Path,
				"method", r.Method,
				"error", err,
			)
			return
		}

		RespondWithJSON(w, statusCode, map[string]string{"error": publicMessage})
	}
}

// classifyError maps the domain error taxonomy onto HTTP statuses:
// validation and unsupported-type extraction failures are the client's to
// fix; model failures are upstream (502/504); an unreachable store is 503.
func classifyError(err error) (int, string) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	var extractionErr *apperrors.ExtractionError
	if errors.As(err, &extractionErr) {
		if extractionErr.Reason == apperrors.ExtractionUnsupportedType {
			return http.StatusBadRequest, "Unsupported file type"
		}
		return http.StatusInternalServerError, fmt.Sprintf("Could not extract text from the file (%s)", extractionErr.Reason)
	}

	var aiErr *apperrors.AIError
	if errors.As(err, &aiErr) {
		if aiErr.Kind == apperrors.AITimeout {
			return http.StatusGatewayTimeout, "The AI model timed out. Please try again."
		}
		return http.StatusBadGateway, "The AI model could not process the request. Please try again."
	}

	var storeErr *apperrors.StoreError
	if errors.As(err, &storeErr) {
		return http.StatusServiceUnavailable, "The content store is currently unavailable."
	}

	return http.StatusInternalServerError, msgInternalServer
}
