package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-backend/storage"
)

type uploadHandler struct {
	uploader  storage.URLIssuer
	responder Responder
}

func newUploadHandler(uploader storage.URLIssuer) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()
	return uploadHandler{
		uploader:  uploader,
		responder: NewResponder(logger),
	}
}

// getUploadURL hands the client a short-lived presigned URL to PUT a JPEG
// banner or profile image directly to the bucket.
func (h uploadHandler) getUploadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := h.uploader.UploadURL(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"upload_url": url})
	}
}
