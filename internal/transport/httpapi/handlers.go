package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	domainexplorer "explorer/internal/domain/explorer"
)

const maxEventBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

type handler struct {
	svc   Service
	ready func(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Code: CodeStoreUnavailable, Message: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEventBytes)

	var event domainexplorer.PushEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		if !domainexplorer.IsInvalidInput(err) {
			err = fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		writeError(w, r, err)
		return
	}

	result, err := h.svc.Ingest(r.Context(), event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleNetworkStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.NetworkStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func listHandler[F any, C ~string, R any](
	parse func(url.Values) (domainexplorer.EntityInput[F, C], error),
	list func(context.Context, domainexplorer.EntityInput[F, C]) (domainexplorer.EntityPage[R], error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parse(r.URL.Query())
		if err != nil {
			writeError(w, r, err)
			return
		}

		page, err := list(r.Context(), input)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func getHandler[R any](get func(context.Context, string) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}
