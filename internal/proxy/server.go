// Package proxy serves the admin API prefix by forwarding it to the
// configured upstream backend.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"cleanadmin/internal/config"
	"cleanadmin/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	upstream *url.URL
	prefix   string
	server   *http.Server
	probe    *http.Client
	logger   zerolog.Logger
}

func NewServer(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	if cfg.Backend.Upstream == "" {
		return nil, errors.New("backend.upstream is required to run the proxy")
	}
	upstream, err := url.Parse(cfg.Backend.Upstream)
	if err != nil {
		return nil, fmt.Errorf("parse upstream: %w", err)
	}

	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "proxy").Logger()
	}

	s := &Server{
		upstream: upstream,
		prefix:   "/" + strings.Trim(cfg.Proxy.Prefix, "/"),
		probe:    &http.Client{Timeout: 3 * time.Second},
		logger:   l,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		mux.Handle("/metrics", promhttp.Handler())
	}
	forward := newRateLimiter(cfg.Proxy.RateLimit).Wrap(s.reverseProxy())
	mux.Handle(s.prefix, forward)
	mux.Handle(s.prefix+"/", forward)

	s.server = &http.Server{
		Addr:              cfg.Proxy.Listen,
		Handler:           s.loggingMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Backend.Timeout() + 5*time.Second,
	}
	return s, nil
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Str("upstream", s.upstream.String()).
		Str("prefix", s.prefix).Msg("proxy listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// reverseProxy forwards the request path unchanged and rewrites Host to the
// upstream's.
func (s *Server) reverseProxy() http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(s.upstream)
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("proxy error")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Proxy error",
				"message": err.Error(),
			})
		},
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports whether the upstream answers at all; any HTTP status
// counts as reachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodHead, s.upstream.String(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp, err := s.probe.Do(req)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	resp.Body.Close()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		if strings.HasPrefix(r.URL.Path, s.prefix) {
			metrics.IncProxy(recorder.status)
		}
		s.logger.Info().Str("method", r.Method).Str("path", r.URL.Path).
			Int("status", recorder.status).Dur("duration", dur).Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
