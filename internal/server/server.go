package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers that own their routes.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Dispatcher turns an inbound message into reply chunks.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg models.Message) []models.Chunk
}

// Replier delivers one chunk to a conversation.
type Replier interface {
	Reply(ctx context.Context, conv models.Conversation, chunk models.Chunk) error
}

// Opts configures a [Server].
type Opts struct {
	Addr            string
	BotName         string
	WebhookSecret   string
	DeliveryTimeout time.Duration
	Dispatcher      Dispatcher
	Replier         Replier
	Logger          *log.Logger
}

// Server is the bot's HTTP front door.
type Server struct {
	http    *http.Server
	webhook *WebhookHandler
	logger  *log.Logger
}

// New builds the router, middleware stack and handlers.
func New(opts Opts) *Server {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	logger := shared.WithLogger(opts.Logger, "component", "server")

	webhook := NewWebhookHandler(WebhookOpts{
		BotName:    opts.BotName,
		Timeout:    opts.DeliveryTimeout,
		Dispatcher: opts.Dispatcher,
		Replier:    opts.Replier,
		Logger:     opts.Logger,
	})

	router := NewBasicRouter()
	router.Use(Recover(logger), RequestID(), Logging(logger))
	router.Handle(http.MethodGet, "/healthz", HealthHandler())
	logger.Debug("routes registered", "routes", router.Routes(), "webhook", webhook.Routes())

	hooks := NewBasicRouter()
	hooks.Use(Recover(logger), RequestID(), Logging(logger), BearerSecret(opts.WebhookSecret))
	hooks.Handler(webhook)

	mux := http.NewServeMux()
	mux.Handle("/healthz", router)
	mux.Handle("/", hooks)

	return &Server{
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		webhook: webhook,
		logger:  logger,
	}
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe serves until [Server.Shutdown]. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then waits for in-flight deliveries or ctx, whichever ends first.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.webhook.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("shutdown before deliveries finished", "error", ctx.Err())
	}
	return err
}
