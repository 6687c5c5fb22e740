// Package api provides HTTP handlers and the main API server logic for
// HealthBot.
//
// It exposes the screen-shell contract over REST: session lifecycle, the
// scripted category tree actions, free-text sends, timeline snapshots, and
// helpline dial-out. The shell renders exclusively from timeline snapshots;
// every failure path terminates in a JSON error envelope, never a panic.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ConnectHealth/HealthBot/internal/content"
	"github.com/ConnectHealth/HealthBot/internal/convo"
	"github.com/ConnectHealth/HealthBot/internal/dialer"
	"github.com/ConnectHealth/HealthBot/internal/reply"
	"github.com/ConnectHealth/HealthBot/internal/session"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr      string
	Responder convo.Responder
	Dialer    dialer.Dialer
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the server listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithResponder sets the free-text responder shared by all sessions.
func WithResponder(r convo.Responder) Option {
	return func(o *Opts) { o.Responder = r }
}

// WithDialer enables helpline dial-out through the given dialer.
func WithDialer(d dialer.Dialer) Option {
	return func(o *Opts) { o.Dialer = d }
}

// Server hosts the HealthBot HTTP API.
type Server struct {
	addr      string
	responder convo.Responder
	dialer    dialer.Dialer
	registry  *session.Registry
}

// NewServer creates an API server. The content tables are validated here so a
// data gap fails startup instead of a user's session.
func NewServer(opts ...Option) (*Server, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Responder == nil {
		cfg.Responder = &reply.StaticResponder{}
	}

	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("content tables failed validation: %w", err)
	}

	slog.Debug("NewServer: configured", "addr", cfg.Addr, "dialer_enabled", cfg.Dialer != nil)
	return &Server{
		addr:      cfg.Addr,
		responder: cfg.Responder,
		dialer:    cfg.Dialer,
		registry:  session.NewRegistry(),
	}, nil
}

// Handler returns the routed HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /categories", s.categoriesHandler)
	mux.HandleFunc("POST /sessions", s.createSessionHandler)
	mux.HandleFunc("DELETE /sessions/{id}", s.deleteSessionHandler)
	mux.HandleFunc("GET /sessions/{id}/timeline", s.timelineHandler)
	mux.HandleFunc("GET /sessions/{id}/subcategories", s.subCategoriesHandler)
	mux.HandleFunc("POST /sessions/{id}/category", s.selectCategoryHandler)
	mux.HandleFunc("POST /sessions/{id}/subcategory", s.selectSubCategoryHandler)
	mux.HandleFunc("POST /sessions/{id}/answer", s.answerPromptHandler)
	mux.HandleFunc("POST /sessions/{id}/message", s.sendMessageHandler)
	mux.HandleFunc("POST /sessions/{id}/dial", s.dialHandler)
	return mux
}

// Run starts the API server and blocks until it exits.
func (s *Server) Run() error {
	slog.Info("HealthBot API running", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Run builds a server from the given options and runs it.
func Run(opts ...Option) error {
	srv, err := NewServer(opts...)
	if err != nil {
		return err
	}
	return srv.Run()
}
