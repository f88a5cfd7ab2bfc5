// Package http serves probes, metrics and the dashboard REST API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/autopeer-io/dashboard/internal/dashboard/controller"
	"github.com/autopeer-io/dashboard/internal/dashboard/source"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	"github.com/autopeer-io/dashboard/internal/pkg/metrics"
	"github.com/autopeer-io/dashboard/pkg/log"
	"github.com/autopeer-io/dashboard/pkg/options"
)

// SourceName labels readings posted to the API.
const SourceName = "http"

const (
	shutdownTimeout = 5 * time.Second
	maxPayloadBytes = 64 << 10
)

// Backend is what the API exposes of the running dashboard.
type Backend interface {
	Ingest(source string, r telemetry.Reading) controller.RenderInstruction
	Snapshot() telemetry.Snapshot
	// Display fires a shell event and returns the resulting state.
	Display(ctx context.Context, event string) (string, error)
	Ready() bool
}

type Server struct {
	server  *http.Server
	options *options.HttpOptions
}

// NewServer builds the router. ws, when not nil, is mounted on /ws.
func NewServer(opts *options.HttpOptions, backend Backend, ws http.Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:              opts.Addr,
			Handler:           NewRouter(backend, ws, opts.Timeout),
			ReadHeaderTimeout: opts.Timeout,
		},
		options: opts,
	}
}

// NewRouter returns the dashboard routes. API calls are bounded by timeout;
// the websocket stream is not.
func NewRouter(backend Backend, ws http.Handler, timeout time.Duration) http.Handler {
	h := &handler{backend: backend}
	r := mux.NewRouter()

	// Basic Liveness Probe
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.readyz).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	if ws != nil {
		r.Handle("/ws", ws).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/snapshot", h.snapshot).Methods(http.MethodGet)
	api.HandleFunc("/readings", h.readings).Methods(http.MethodPost)
	api.HandleFunc("/display/{action:show|hide|close}", h.display).Methods(http.MethodPost)
	if timeout > 0 {
		api.Use(func(next http.Handler) http.Handler {
			return http.TimeoutHandler(next, timeout, "request timed out")
		})
	}

	return r
}

func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen(s.options.Network, s.options.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve handles requests on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	log.Info("Starting HTTP Server", "addr", lis.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

type handler struct {
	backend Backend
}

func (h *handler) readyz(w http.ResponseWriter, _ *http.Request) {
	if !h.backend.Ready() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) snapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.backend.Snapshot())
}

func (h *handler) readings(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	reading, err := source.DecodeReading(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, h.backend.Ingest(SourceName, reading))
}

func (h *handler) display(w http.ResponseWriter, r *http.Request) {
	action := mux.Vars(r)["action"]

	state, err := h.backend.Display(r.Context(), action)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": state})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("Failed to write response", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
