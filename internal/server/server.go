package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/social-detail-bot/internal/detail"
	"github.com/orgball2608/social-detail-bot/internal/domain"
	"github.com/orgball2608/social-detail-bot/internal/posturl"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	RequestIDHeader = "X-Request-ID"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Logger   logger.Logger
	Config   *config.Config
	Resolver *detail.Resolver
}

type Server struct {
	srv    *http.Server
	logger logger.Logger
}

// New builds the HTTP server and ties it to the fx lifecycle.
func New(opts Opts) *Server {
	log := opts.Logger.WithComponent("HTTPServer")
	s := &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
			Handler:           NewHandler(opts.Resolver, log),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: log,
	}

	opts.LC.Append(fx.Hook{
		OnStart: s.start,
		OnStop:  s.stop,
	})

	return s
}

func (s *Server) start(context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}

	s.logger.Info("Starting server", "addr", ln.Addr().String())

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", "error", err)
		}
	}()
	return nil
}

func (s *Server) stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down server")
	return s.srv.Shutdown(ctx)
}

// DetailResponse is the body of GET /detail/{segment}.
type DetailResponse struct {
	Post       *domain.Post      `json:"post"`
	OriginalID string            `json:"originalId"`
	Kind       domain.EntityKind `json:"kind"`
	Title      string            `json:"title"`
	Canonical  string            `json:"canonical,omitempty"`
}

type handler struct {
	resolver *detail.Resolver
	logger   logger.Logger
}

// NewHandler returns the routes served by the detail service.
func NewHandler(resolver *detail.Resolver, log logger.Logger) http.Handler {
	h := &handler{resolver: resolver, logger: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("GET /detail/{params...}", h.detail)

	return withRequestID(mux)
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		h.logger.Error("Failed to write response", "error", err)
	}
}

func (h *handler) detail(w http.ResponseWriter, r *http.Request) {
	parsed := detail.Parse(r.PathValue("params"))
	result := h.resolver.Fetch(r.Context(), parsed)

	resp := DetailResponse{
		Post:       result.Post,
		OriginalID: result.OriginalID,
		Kind:       parsed.Kind,
		Title:      detail.Title(parsed.Kind),
	}

	status := http.StatusOK
	if result.Found() {
		resp.Canonical = posturl.Canonical(parsed.Kind, *result.Post)
	} else {
		status = http.StatusNotFound
	}

	h.logger.Debug("Detail request served",
		"request_id", RequestID(r.Context()),
		"kind", parsed.Kind,
		"id", parsed.ID,
		"status", status)

	writeJSON(w, status, resp, h.logger)
}

func writeJSON(w http.ResponseWriter, status int, body any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
