package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/ports"
	"explorer/internal/usecase/explorer"
)

// Service is the part of the explorer usecases the HTTP API serves.
type Service interface {
	Ingest(ctx context.Context, event domainexplorer.PushEvent) (explorer.IngestResult, error)
	NetworkStatus(ctx context.Context, network string) (explorer.NetworkStatus, error)

	ListAddresses(ctx context.Context, input ports.AddressInput) (domainexplorer.EntityPage[ports.AddressRecord], error)
	ListAssets(ctx context.Context, input ports.AssetInput) (domainexplorer.EntityPage[ports.AssetRecord], error)
	ListCases(ctx context.Context, input ports.CaseInput) (domainexplorer.EntityPage[ports.CaseRecord], error)
	ListReporters(ctx context.Context, input ports.ReporterInput) (domainexplorer.EntityPage[ports.ReporterRecord], error)
	ListNetworks(ctx context.Context, input ports.NetworkInput) (domainexplorer.EntityPage[ports.NetworkRecord], error)

	GetAddress(ctx context.Context, id string) (ports.AddressRecord, error)
	GetAsset(ctx context.Context, id string) (ports.AssetRecord, error)
	GetCase(ctx context.Context, id string) (ports.CaseRecord, error)
	GetReporter(ctx context.Context, id string) (ports.ReporterRecord, error)
	GetNetwork(ctx context.Context, id string) (ports.NetworkRecord, error)
}

// HTTPObserver receives one observation per served request.
type HTTPObserver interface {
	ObserveHTTP(route string, method string, status int, elapsed time.Duration)
}

type Options struct {
	// Metrics is mounted at /metrics when set.
	Metrics  http.Handler
	Observer HTTPObserver
	// Ready backs /healthz; nil means always ready.
	Ready func(ctx context.Context) error
}

func NewRouter(svc Service, opts Options) http.Handler {
	h := &handler{svc: svc, ready: opts.Ready}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if opts.Observer != nil {
		r.Use(instrument(opts.Observer))
	}

	r.Get("/healthz", h.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Post("/events", h.handleIngest)

	r.Get("/addresses", listHandler(ParseAddressInput, svc.ListAddresses))
	r.Get("/addresses/{id}", getHandler(svc.GetAddress))
	r.Get("/assets", listHandler(ParseAssetInput, svc.ListAssets))
	r.Get("/assets/{id}", getHandler(svc.GetAsset))
	r.Get("/cases", listHandler(ParseCaseInput, svc.ListCases))
	r.Get("/cases/{id}", getHandler(svc.GetCase))
	r.Get("/reporters", listHandler(ParseReporterInput, svc.ListReporters))
	r.Get("/reporters/{id}", getHandler(svc.GetReporter))
	r.Get("/networks", listHandler(ParseNetworkInput, svc.ListNetworks))
	r.Get("/networks/{id}", getHandler(svc.GetNetwork))
	r.Get("/networks/{id}/status", h.handleNetworkStatus)

	return r
}

func instrument(observer HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			observer.ObserveHTTP(route, r.Method, status, time.Since(started))
		})
	}
}
