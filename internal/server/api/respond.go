package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/guncedev/gunce/internal/common"
)

// errorResponse is the JSON error envelope shared by all endpoints.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: ve.Error(), Field: ve.Field,
		})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, common.ErrLocked),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, common.ErrDecryption):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "decryption failed"})
	case errors.Is(err, common.ErrStorage):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "storage failure"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
