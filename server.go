package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// maxBodyBytes caps the size of an optimize request.
const maxBodyBytes = 8 << 20

// Server exposes the optimizer over HTTP.
type Server struct {
	router *mux.Router
	cfg    Config
	log    logr.Logger
}

// NewServer builds a Server with its routes registered.
func NewServer(cfg Config, log logr.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		cfg:    cfg,
		log:    log.WithName("server"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/optimize", s.handleOptimize).Methods("POST")
}

// Handler returns the router wrapped with CORS.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.router)
}

// Start listens on cfg.Addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", "addr", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []byte(`{"status":"ok"}`))
}

// handleOptimize accepts an event document. ?detail=true adds text reports.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		code, body := errBody(http.StatusBadRequest, "read body: "+err.Error())
		writeJSON(w, code, body)
		return
	}
	if len(raw) > maxBodyBytes {
		code, body := errBody(http.StatusRequestEntityTooLarge, "request body too large")
		writeJSON(w, code, body)
		return
	}
	detail := r.URL.Query().Get("detail") == "true"
	code, body := handleOptimize(r.Context(), string(raw), detail, s.cfg, s.log)
	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, code int, body []byte) {
	for k, v := range jsonHeader {
		w.Header().Set(k, v)
	}
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
