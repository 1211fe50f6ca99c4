package webutil

const (
	// Header Keys
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderCacheControl  = "Cache-Control"

	// Content Types
	ContentTypeJSONUTF8      = "application/json; charset=utf-8"
	ContentTypeTextPlainUTF8 = "text/plain; charset=utf-8"
	ContentTypeEventStream   = "text/event-stream"
	ContentTypeEPUB          = "application/epub+zip"
)
