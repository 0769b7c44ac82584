package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"explorer/internal/bootstrap/logging"
	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/errs"
)

const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidParam), errors.Is(err, errMalformedBody), domainexplorer.IsInvalidInput(err):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, domainexplorer.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domainexplorer.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, CodeStoreUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.Error(r.Context(), "http request failed", slog.Any("err", errs.Loggable(err)))
		message = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
