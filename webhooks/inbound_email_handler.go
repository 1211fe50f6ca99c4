// Package webhooks accepts inbound-email posts from the mail provider and
// feeds each message through the same classify-and-persist pipeline as a
// browser upload.
package webhooks

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/coreybb/newsflash/actions"
	"github.com/coreybb/newsflash/extract"
	"github.com/coreybb/newsflash/webutil"
	"github.com/jhillyerd/enmime"
)

const (
	formFieldEmail   = "email"
	formFieldFrom    = "from"
	formFieldSubject = "subject"
)

type InboundEmailHandler struct {
	Actions *actions.Actions
}

func NewInboundEmailHandler(a *actions.Actions) *InboundEmailHandler {
	return &InboundEmailHandler{Actions: a}
}

// HandleInbound ingests one email. The provider retries on non-2xx, so
// malformed messages are acknowledged with 200 and a reason rather than
// bounced back into a retry loop.
func (h *InboundEmailHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	log.Printf("InboundEmailHandler: HandleInbound called. Content-Type: %s", r.Header.Get(webutil.HeaderContentType))

	rawMIME, sender, subject, err := parseWebhookRequest(r)
	if err != nil {
		webutil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	env, err := enmime.ReadEnvelope(strings.NewReader(rawMIME))
	if err != nil {
		acknowledgeWithReason(w, "Failed to parse raw MIME", err)
		return
	}

	if resolved := resolveSender(env, sender); resolved != "" {
		sender = resolved
	}

	content, imageURL := extractEmailContent(env)
	if content == "" && imageURL == "" {
		acknowledgeWithReason(w, "Email contained no usable text or image content", nil)
		return
	}

	log.Printf("INFO: Ingesting email from %s, Subject: %q, Message-ID: %q",
		sender, subject, env.GetHeader("Message-ID"))

	source, err := h.Actions.Ingest(r.Context(), actions.IngestInput{
		Content:     content,
		ImageURL:    imageURL,
		Contributor: sender,
	})
	if err != nil {
		log.Printf("ERROR (HandleInbound): Ingestion failed for sender %s: %v", sender, err)
		webutil.RespondWithError(w, http.StatusInternalServerError, "Internal server error processing email")
		return
	}

	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK (Source %s created)", source.ID)
}

func parseWebhookRequest(r *http.Request) (rawMIME, sender, subject string, err error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			return "", "", "", fmt.Errorf("failed to parse form data: %w", err)
		}
	}

	rawMIME = r.FormValue(formFieldEmail)
	if rawMIME == "" {
		return "", "", "", fmt.Errorf("missing raw email content in webhook payload")
	}
	return rawMIME, r.FormValue(formFieldFrom), r.FormValue(formFieldSubject), nil
}

// resolveSender prefers the parsed Sender/From headers over the provider's
// raw form field.
func resolveSender(env *enmime.Envelope, fallback string) string {
	for _, header := range []string{"Sender", "From"} {
		if list, err := env.AddressList(header); err == nil && len(list) > 0 && list[0].Address != "" {
			return strings.ToLower(list[0].Address)
		}
	}

	raw := strings.TrimSpace(fallback)
	if start := strings.LastIndex(raw, "<"); start != -1 {
		if end := strings.LastIndex(raw, ">"); end > start {
			return strings.ToLower(strings.TrimSpace(raw[start+1 : end]))
		}
	}
	if strings.Contains(raw, "@") {
		return strings.ToLower(raw)
	}
	return ""
}

// extractEmailContent picks the message body, falling back to the first
// extractable attachment. An image attachment supplies the image reference
// when no text was found anywhere.
func extractEmailContent(env *enmime.Envelope) (content, imageURL string) {
	content = strings.TrimSpace(env.Text)
	if content != "" {
		return content, ""
	}

	for _, att := range append(env.Attachments, env.Inlines...) {
		fileType, err := extract.DetectFileType(att.ContentType, att.FileName)
		if err != nil {
			continue
		}

		result, err := extract.Extract(att.Content, fileType)
		if err != nil {
			log.Printf("WARN: Could not extract attachment %q (%s): %v", att.FileName, att.ContentType, err)
			continue
		}

		if result.Text != "" {
			return result.Text, ""
		}
		if imageURL == "" && result.ImageDataURI != "" {
			imageURL = result.ImageDataURI
		}
	}
	return "", imageURL
}

func acknowledgeWithReason(w http.ResponseWriter, reason string, cause error) {
	if cause != nil {
		log.Printf("WARN: %s: %v", reason, cause)
	} else {
		log.Printf("WARN: %s", reason)
	}
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK (%s)", reason)
}
