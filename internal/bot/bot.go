package bot

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/lists"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/services"
	"github.com/desertthunder/condoriano/internal/shared"
)

// New wires the full command set from config: both list engines over store plus every collaborator.
//
// client is shared by the collaborators that call out; nil uses [services.NewHTTPClient].
func New(cfg *shared.Config, store lists.Store, client *http.Client, logger *log.Logger) *Router {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if client == nil {
		client = services.NewHTTPClient(0)
	}

	search := cfg.Credentials.Search
	return NewRouter(RouterOpts{
		Reminders: lists.NewEngine(lists.EngineOpts{Kind: models.Reminders, Key: lists.PerUser(models.Reminders), Store: store, Logger: logger}),
		Replies:   lists.NewEngine(lists.EngineOpts{Kind: models.Replies, Key: lists.Singleton(models.Replies), Store: store, Logger: logger}),
		Collaborators: []services.Collaborator{
			services.NewImageSearch(services.ImageSearchOpts{
				BaseURL:    search.BaseURL,
				APIKey:     search.APIKey,
				EngineID:   search.EngineID,
				RateLimit:  search.RateLimit,
				HTTPClient: client,
				Logger:     logger,
			}),
			services.NewDictionary(cfg.Dictionary.BaseURL, client, logger),
			services.NewChooser(nil),
			services.NewASCII(""),
			services.Birthday{},
			services.Exodia{},
			services.Markdown{},
		},
		TriggerWords: cfg.Bot.TriggerWords,
		Logger:       logger,
	})
}
