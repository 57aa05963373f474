package lists

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

// Store is the persisted list contract the engine depends on.
//
// GetList returns [shared.ErrListNotFound] for a list that was never created.
// UpdateList must apply fn and persist the result atomically with respect to other updates of the same key.
type Store interface {
	GetList(ctx context.Context, key models.ListKey) (*models.ItemList, error)
	UpdateList(ctx context.Context, key models.ListKey, fn func(list *models.ItemList) error) (*models.ItemList, error)
}

// KeyFunc resolves the list a message operates on.
type KeyFunc func(msg models.Message) models.ListKey

// PerUser keys lists of kind by the sender's user id.
func PerUser(kind models.ListKind) KeyFunc {
	return func(msg models.Message) models.ListKey {
		return models.ListKey{Kind: kind, Owner: msg.UserID}
	}
}

// Singleton keys every message to the one global list of kind.
func Singleton(kind models.ListKind) KeyFunc {
	return func(models.Message) models.ListKey {
		return models.ListKey{Kind: kind, Owner: models.GlobalOwner}
	}
}

// EngineOpts configures an [Engine].
type EngineOpts struct {
	Kind   models.ListKind
	Key    KeyFunc       // defaults to PerUser for reminders, Singleton otherwise
	Store  Store         // required
	Logger *log.Logger   // defaults to shared.NewLogger(nil)
	Intn   func(int) int // random index source, defaults to rand.IntN
}

// Engine applies show/add/remove actions against one kind of list.
type Engine struct {
	kind   models.ListKind
	key    KeyFunc
	store  Store
	logger *log.Logger
	intn   func(int) int
	msgs   messages
}

var errNoItem = errors.New("no item at position")

// NewEngine creates an [Engine] from opts.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Key == nil {
		if opts.Kind == models.Reminders {
			opts.Key = PerUser(opts.Kind)
		} else {
			opts.Key = Singleton(opts.Kind)
		}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}

	return &Engine{
		kind:   opts.Kind,
		key:    opts.Key,
		store:  opts.Store,
		logger: shared.WithLogger(opts.Logger, "list", string(opts.Kind)),
		intn:   opts.Intn,
		msgs:   messagesFor(opts.Kind),
	}
}

// Kind returns the list kind this engine serves.
func (e *Engine) Kind() models.ListKind {
	return e.kind
}

// Handle runs the action named by args[0] with the remaining words as its operand.
func (e *Engine) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	var token string
	if len(args) > 0 {
		token = args[0]
	}
	var operand []string
	if len(args) > 1 {
		operand = args[1:]
	}

	switch action := models.ParseAction(token); action {
	case models.ActionNone:
		return models.Texts(e.msgs.noAction)
	case models.ActionShow:
		return e.Show(ctx, msg)
	case models.ActionAdd:
		return e.Add(ctx, msg, strings.Join(operand, " "))
	case models.ActionRemove:
		var position string
		if len(operand) > 0 {
			position = operand[0]
		}
		return e.Remove(ctx, msg, position)
	case models.ActionUnrecognized:
		return models.Texts(Unrecognized)
	default:
		panic(fmt.Sprintf("lists: unhandled action %v", action))
	}
}

// Show renders the list as one "<n>. <text>" chunk per item.
func (e *Engine) Show(ctx context.Context, msg models.Message) []models.Chunk {
	key := e.key(msg)

	list, err := e.store.GetList(ctx, key)
	if errors.Is(err, shared.ErrListNotFound) {
		return models.Texts(e.msgs.empty...)
	}
	if err != nil {
		e.logger.Error("failed to fetch list", "key", key, "error", err)
		return models.Texts(e.msgs.fetchErr)
	}

	if list.Len() == 0 {
		return models.Texts(e.msgs.empty...)
	}

	chunks := make([]models.Chunk, 0, list.Len())
	for i, item := range list.Items {
		chunks = append(chunks, models.Text(fmt.Sprintf("%d. %s", i+1, item)))
	}
	return chunks
}

// Add appends text to the list. Empty text is rejected before the store is touched.
func (e *Engine) Add(ctx context.Context, msg models.Message, text string) []models.Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Texts(e.msgs.addHint)
	}

	key := e.key(msg)
	loaded := false
	_, err := e.store.UpdateList(ctx, key, func(list *models.ItemList) error {
		loaded = true
		list.Append(text)
		return nil
	})
	if err != nil {
		e.logger.Error("failed to add item", "key", key, "error", err)
		if loaded {
			return models.Texts(e.msgs.addSaveErr)
		}
		return models.Texts(e.msgs.addErr)
	}

	e.logger.Debug("item added", "key", key)
	return models.Texts(fmt.Sprintf(e.msgs.addedFmt, text))
}

// Remove deletes the item at the 1-based position named by token.
//
// A missing token and a non-integer token produce different hints.
// An absent list and an out-of-range position both report that no such item exists and leave storage unchanged.
func (e *Engine) Remove(ctx context.Context, msg models.Message, token string) []models.Chunk {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Texts(e.msgs.removeHint)
	}

	position, err := strconv.ParseInt(token, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return models.Texts(fmt.Sprintf(e.msgs.noItemFmt, token))
	}
	if err != nil {
		return models.Texts(e.msgs.numberHint)
	}

	key := e.key(msg)
	var removed string
	loaded := false
	_, err = e.store.UpdateList(ctx, key, func(list *models.ItemList) error {
		loaded = true
		if position < 1 || position > int64(list.Len()) {
			return errNoItem
		}
		removed, _ = list.RemoveAt(int(position))
		return nil
	})

	switch {
	case errors.Is(err, errNoItem):
		return models.Texts(fmt.Sprintf(e.msgs.noItemFmt, token))
	case err != nil && loaded:
		e.logger.Error("failed to save list after remove", "key", key, "error", err)
		return models.Texts(e.msgs.removeSave)
	case err != nil:
		e.logger.Error("failed to remove item", "key", key, "error", err)
		return models.Texts(e.msgs.removeErr)
	}

	e.logger.Debug("item removed", "key", key, "position", position)
	return models.Texts(fmt.Sprintf(e.msgs.removedFmt, removed))
}

// RandomPick replies with a uniformly chosen item, trimmed of surrounding whitespace.
func (e *Engine) RandomPick(ctx context.Context, msg models.Message) []models.Chunk {
	key := e.key(msg)

	list, err := e.store.GetList(ctx, key)
	if err != nil && !errors.Is(err, shared.ErrListNotFound) {
		e.logger.Error("failed to fetch list for random pick", "key", key, "error", err)
		return models.Texts(Broken)
	}

	if list.Len() == 0 {
		return models.Texts(e.msgs.defaultHint)
	}

	return models.Texts(strings.TrimSpace(list.Items[e.intn(list.Len())]))
}
