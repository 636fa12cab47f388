package handler

import (
	"encoding/json"
	"net/http"
)

// mediaRequest is the JSON body for POST /media. Base64Data is a []byte so
// encoding/json base64-decodes the payload during unmarshaling.
type mediaRequest struct {
	EventID    int     `json:"event_id"`
	Base64Data []byte  `json:"base64_data"`
	Caption    *string `json:"caption"`
}

// UploadMedia handles POST /media.
func (s *Server) UploadMedia(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, r, "request body must be valid JSON with event_id and base64_data")
		return
	}

	media, err := s.media.Upload(r.Context(), userID(r), req.EventID, req.Base64Data, req.Caption)
	if err != nil {
		serviceError(w, r, err, "event")
		return
	}

	writeJSON(w, r, http.StatusCreated, mediaToWire(media))
}

// DeleteMedia handles DELETE /media/{id}.
func (s *Server) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.media.Delete(r.Context(), userID(r), id); err != nil {
		serviceError(w, r, err, "media")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
