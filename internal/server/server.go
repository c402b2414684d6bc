// Package server serves the HDI dashboard page and its figure endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hdidash/internal/chart"
	"hdidash/internal/indicators"
)

const (
	maxFigureRequestBytes = 1 << 20
	shutdownTimeout       = 5 * time.Second
	readHeaderTimeout     = 10 * time.Second
)

// DefaultRegions is the checklist selection of a fresh page load.
var DefaultRegions = []string{indicators.RegionWorld, indicators.RegionEastAsiaPacific}

// Server routes dashboard requests to a chart renderer.
type Server struct {
	renderer *chart.Renderer
	logger   *zap.Logger
	mux      *http.ServeMux
}

// New wires the routes. The renderer's dataset must not change afterwards.
func New(renderer *chart.Renderer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{renderer: renderer, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/figure", s.handleFigure)
	s.mux.HandleFunc("/", s.handleDashboard)
	return s
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return withRequestLog(s.logger, s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type checklistOption struct {
	Value   string
	Checked bool
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	options := make([]checklistOption, 0, len(indicators.Regions()))
	for _, region := range indicators.Regions() {
		options = append(options, checklistOption{
			Value:   region,
			Checked: slices.Contains(DefaultRegions, region),
		})
	}
	fig := s.renderer.Render(DefaultRegions, "")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardPageTemplate.Execute(w, map[string]any{
		"title":       "HDI Over Time for All Countries",
		"options":     options,
		"figure_json": s.mustJSONTemplateJS(fig),
		"citation":    s.renderer.Dataset().Sources().Citation,
	}); err != nil {
		s.logger.Error("template error", zap.Error(err))
	}
}

// figureRequest mirrors the page state: checked regions and the last hover.
type figureRequest struct {
	Regions   []string         `json:"regions"`
	HoverData *chart.HoverData `json:"hover_data"`
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req figureRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFigureRequestBytes))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Debug("figure request decode error", zap.Error(err))
		return
	}
	hovered := chart.HoveredEntity(req.HoverData)
	fig := s.renderer.Render(req.Regions, hovered)
	s.writeJSON(w, fig)
}

func (s *Server) mustJSONTemplateJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("json marshal error for template data", zap.Error(err))
		return template.JS("null")
	}
	return template.JS(b)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode error", zap.Error(err))
	}
}

// Run listens on addr and serves h until ctx is cancelled.
func Run(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h, logger)
}

// Serve serves h on ln until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(logger),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
