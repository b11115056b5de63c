package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// statusFor maps service errors to HTTP status codes and default messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrConflict):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Not authorized"
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// writeError writes the {message} envelope for err. Internal errors are
// logged and reported as "Server error" without details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)

	if status == http.StatusInternalServerError {
		s.log(r.Context()).Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeMessage(w, status, msg)
		return
	}

	var pe *common.PublicError
	if errors.As(err, &pe) {
		msg = pe.Message
	}
	writeMessage(w, status, msg)
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return common.WithMessage(common.ErrValidation, "Invalid JSON body")
}
