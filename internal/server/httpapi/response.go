package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ktpm/catalog/internal/common"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeErrorMessage(w, http.StatusUnauthorized, common.InvalidTokenMessage)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(common.ErrValidation, err)
	}
	return nil
}

// statusFor maps a service error onto its HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrWrongPassword), errors.Is(err, common.ErrTokenInvalid), errors.Is(err, common.ErrTokenParse):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrUsernameExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageFor is the client-facing text for err. Internal causes and token
// failure details stay server side.
func messageFor(err error) string {
	switch statusFor(err) {
	case http.StatusUnauthorized:
		if errors.Is(err, common.ErrWrongPassword) {
			return common.ErrWrongPassword.Error()
		}
		return common.InvalidTokenMessage
	case http.StatusBadRequest:
		if errors.Is(err, common.ErrPasswordMismatch) {
			return common.ErrPasswordMismatch.Error()
		}
		return common.ErrValidation.Error()
	case http.StatusNotFound:
		if errors.Is(err, common.ErrProductNotFound) {
			return common.ErrProductNotFound.Error()
		}
		return common.ErrUserNotFound.Error()
	case http.StatusConflict:
		return common.ErrUsernameExists.Error()
	default:
		return "internal server error"
	}
}
