package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Nithiyasree11/basic-stock-analyzer/consts"
	"github.com/Nithiyasree11/basic-stock-analyzer/internal/metrics"
	"github.com/Nithiyasree11/basic-stock-analyzer/models"
)

//go:embed templates/index.html
var templateFiles embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

// Analyzer runs one analysis. *app.Engine satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*models.RunRecord, error)
}

// ServerConfig contains configuration for HTTP server
type ServerConfig struct {
	Addr    string
	Version string
	// RunTimeout bounds one analysis; the write timeout is derived from it.
	RunTimeout time.Duration
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	analyzer   Analyzer
	version    string
	log        *zap.Logger
}

type section struct {
	Title string
	Body  string
}

type page struct {
	Symbol   string
	Error    string
	Sections []section
}

func NewServer(cfg ServerConfig, analyzer Analyzer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		analyzer: analyzer,
		version:  cfg.Version,
		log:      log,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RunTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Routes returns the router with every endpoint registered.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/analyze", s.handleAnalyzeForm).Methods(http.MethodPost)
	r.HandleFunc("/api/analyze/{symbol}", s.handleAnalyzeAPI).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler())
	return r
}

// Start begins listening for HTTP requests and blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("stopping HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, page{})
}

func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	input := r.FormValue("symbol")
	symbol, err := models.NormalizeSymbol(input)
	if err != nil {
		s.render(w, http.StatusBadRequest, page{Symbol: input, Error: err.Error()})
		return
	}

	rec, err := s.analyzer.Analyze(r.Context(), symbol)
	if err != nil {
		// the raw error is shown as is
		s.render(w, http.StatusBadGateway, page{Symbol: symbol, Error: err.Error()})
		return
	}
	s.render(w, http.StatusOK, page{Symbol: symbol, Sections: sections(rec)})
}

func (s *Server) handleAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	symbol, err := models.NormalizeSymbol(mux.Vars(r)["symbol"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rec, err := s.analyzer.Analyze(r.Context(), symbol)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) render(w http.ResponseWriter, status int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, p); err != nil {
		s.log.Error("failed to render page", zap.Error(err))
	}
}

func sections(rec *models.RunRecord) []section {
	fields := []struct {
		title string
		field models.Field
	}{
		{"Financial Summary", models.FieldFinancialSummary},
		{"Fundamental Summary", models.FieldFundamentalSummary},
		{"News Summary", models.FieldNewsSummary},
		{"Conclusion", models.FieldConclusion},
	}
	out := make([]section, 0, len(fields))
	for _, f := range fields {
		body, ok := rec.Get(f.field)
		if !ok {
			body = consts.MissingSummary
		}
		out = append(out, section{Title: f.title, Body: body})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
