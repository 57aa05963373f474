// package services defines interface Collaborator for the stateless chat commands
package services

import (
	"context"
	"net/http"
	"time"

	"github.com/desertthunder/condoriano/internal/models"
)

// Broken is the fallback reply when an upstream call fails.
const Broken = "i'm broken. Send help... :("

const defaultTimeout = 15 * time.Second

// Collaborator handles one chat command without touching persisted state.
type Collaborator interface {
	// Name returns the command word, e.g. "images".
	Name() string

	// Handle produces the reply for a message whose command word has already been stripped into args.
	Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk
}

// NewHTTPClient returns an [http.Client] with a request timeout, defaulting to 15 seconds.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
