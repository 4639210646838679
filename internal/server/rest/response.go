package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// decodeJSON reads a single JSON object from the request body. Unknown
// fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errMalformedBody
	}
	return nil
}

var errMalformedBody = errors.New("malformed JSON body")

// writeError maps a service error onto a status and a client-safe message.
// Anything unrecognised is a 500 and is logged with full detail.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errMalformedBody):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrDuplicateIdentity):
		writeMessage(w, http.StatusBadRequest, common.ErrDuplicateIdentity.Error())
	case errors.Is(err, common.ErrCredentialMismatch):
		writeMessage(w, http.StatusBadRequest, common.ErrCredentialMismatch.Error())
	case errors.Is(err, common.ErrIdentityNotFound):
		writeMessage(w, http.StatusNotFound, common.ErrIdentityNotFound.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, common.ErrorNotFound.Error())
	default:
		loggerFrom(r.Context(), s.logger).Error(r.Context(), "request failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
