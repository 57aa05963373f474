package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/bot"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

const (
	maxActivityBytes       = 1 << 20
	defaultDeliveryTimeout = 30 * time.Second
)

// WebhookOpts configures a [WebhookHandler].
type WebhookOpts struct {
	BotName    string
	Timeout    time.Duration // per activity, covering dispatch and delivery
	Dispatcher Dispatcher
	Replier    Replier
	Logger     *log.Logger
}

// WebhookHandler receives channel activities and replies asynchronously.
type WebhookHandler struct {
	botName    string
	timeout    time.Duration
	dispatcher Dispatcher
	replier    Replier
	logger     *log.Logger
	wg         sync.WaitGroup
}

// NewWebhookHandler creates a [WebhookHandler].
func NewWebhookHandler(opts WebhookOpts) *WebhookHandler {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultDeliveryTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &WebhookHandler{
		botName:    opts.BotName,
		timeout:    opts.Timeout,
		dispatcher: opts.Dispatcher,
		replier:    opts.Replier,
		logger:     shared.WithLogger(opts.Logger, "component", "webhook"),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *WebhookHandler) Routes() []string {
	return []string{"/api/messages", "/{$}"}
}

// ServeHTTP decodes the activity, acknowledges it and hands it to a background delivery.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var activity models.Activity
	if err := json.NewDecoder(io.LimitReader(r.Body, maxActivityBytes)).Decode(&activity); err != nil {
		h.logger.Warn("bad activity payload", "error", err, "request_id", RequestIDFrom(r.Context()))
		writeError(w, http.StatusBadRequest, "invalid activity")
		return
	}

	logger := h.logger.With("request_id", RequestIDFrom(r.Context()), "type", activity.Type, "conversation", activity.Conversation.ID)

	switch {
	case activity.Type == models.ActivityMessage:
		msg := bot.Adapt(activity, h.botName)
		h.deliver(logger, activity.Address(), func(ctx context.Context) []models.Chunk {
			return h.dispatcher.Dispatch(ctx, msg)
		})
		w.WriteHeader(http.StatusAccepted)
	case activity.Type == models.ActivityContactRelationUpdate && activity.Action == "add":
		greeting := bot.Greeting(activity.From.Name)
		h.deliver(logger, activity.Address(), func(context.Context) []models.Chunk {
			return models.Texts(greeting)
		})
		w.WriteHeader(http.StatusAccepted)
	default:
		logger.Debug("ignoring activity", "action", activity.Action)
		w.WriteHeader(http.StatusOK)
	}
}

// deliver produces the reply and sends each chunk in order on a background goroutine, stopping at the first failure.
func (h *WebhookHandler) deliver(logger *log.Logger, conv models.Conversation, reply func(context.Context) []models.Chunk) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		chunks := reply(ctx)
		for i, chunk := range chunks {
			if err := h.replier.Reply(ctx, conv, chunk); err != nil {
				logger.Error("delivery failed", "chunk", i+1, "of", len(chunks), "error", err)
				return
			}
		}
		logger.Debug("delivered", "chunks", len(chunks))
	}()
}

// Wait blocks until every started delivery has finished.
func (h *WebhookHandler) Wait() {
	h.wg.Wait()
}
