package bot

import (
	"context"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/lists"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/services"
	"github.com/desertthunder/condoriano/internal/shared"
)

const (
	// Commands is the reply to "commands" and "help".
	Commands = "Available Commands: images, define, choose, reminders, replies, exodia, birthday"
	// Tara is the reply when a message mentions going out to eat.
	Tara = "Taraaaaaaaaa!!!"
)

// DefaultTriggerWords are matched as substrings of the lower-cased text when no command matches.
var DefaultTriggerWords = []string{"canteen", "kanteen", "eat", "uwi", "tara"}

// Handler produces the reply chunks for one command. args holds the words after the command word.
type Handler interface {
	Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk
}

// HandlerFunc adapts a function to [Handler].
type HandlerFunc func(ctx context.Context, msg models.Message, args []string) []models.Chunk

func (f HandlerFunc) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	return f(ctx, msg, args)
}

// RouterOpts configures a [Router].
type RouterOpts struct {
	Reminders     *lists.Engine
	Replies       *lists.Engine
	Collaborators []services.Collaborator
	TriggerWords  []string
	Logger        *log.Logger
}

// Router dispatches messages to handlers by command word.
type Router struct {
	handlers map[string]Handler
	replies  *lists.Engine
	triggers []string
	logger   *log.Logger
}

// NewRouter builds the command registry. Replies is required; it backs the fallback.
func NewRouter(opts RouterOpts) *Router {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.TriggerWords == nil {
		opts.TriggerWords = DefaultTriggerWords
	}

	r := &Router{
		handlers: make(map[string]Handler),
		replies:  opts.Replies,
		logger:   shared.WithLogger(opts.Logger, "component", "router"),
	}
	for _, w := range opts.TriggerWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			r.triggers = append(r.triggers, w)
		}
	}

	for _, c := range opts.Collaborators {
		r.Register(c.Name(), c)
	}
	if opts.Reminders != nil {
		r.Register(string(opts.Reminders.Kind()), opts.Reminders)
	}
	r.Register(string(opts.Replies.Kind()), opts.Replies)

	help := HandlerFunc(func(context.Context, models.Message, []string) []models.Chunk {
		return models.Texts(Commands)
	})
	r.Register("commands", help)
	r.Register("help", help)

	return r
}

// Register binds a command word to h, replacing any previous binding.
func (r *Router) Register(command string, h Handler) {
	r.handlers[strings.ToLower(command)] = h
}

// Registered returns the sorted command words.
func (r *Router) Registered() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch routes msg and returns its reply. The result always holds at least one chunk.
func (r *Router) Dispatch(ctx context.Context, msg models.Message) []models.Chunk {
	words := shared.Words(msg.Text)
	if len(words) > 0 {
		command := strings.ToLower(words[0])
		if h, ok := r.handlers[command]; ok {
			return r.run(ctx, command, h, msg, words[1:])
		}
	}
	return r.run(ctx, "fallback", HandlerFunc(r.fallback), msg, nil)
}

func (r *Router) fallback(ctx context.Context, msg models.Message, _ []string) []models.Chunk {
	text := strings.ToLower(msg.Text)
	for _, w := range r.triggers {
		if strings.Contains(text, w) {
			return models.Texts(Tara)
		}
	}
	return r.replies.RandomPick(ctx, msg)
}

func (r *Router) run(ctx context.Context, command string, h Handler, msg models.Message, args []string) (chunks []models.Chunk) {
	logger := r.logger.With("command", command, "user", msg.UserID)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("handler panicked", "panic", rec, "stack", string(debug.Stack()))
			chunks = models.Texts(services.Broken)
		}
	}()

	logger.Debug("dispatching", "args", len(args))
	chunks = h.Handle(ctx, msg, args)
	if len(chunks) == 0 {
		logger.Warn("handler returned no reply")
		chunks = models.Texts(services.Broken)
	}
	return chunks
}
