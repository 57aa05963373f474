package services

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/desertthunder/condoriano/internal/models"
)

// Chooser implements the "choose" command: a uniform pick from comma-separated choices.
type Chooser struct {
	intn func(int) int
}

// NewChooser creates a [Chooser]. A nil intn uses [rand.IntN].
func NewChooser(intn func(int) int) *Chooser {
	if intn == nil {
		intn = rand.IntN
	}
	return &Chooser{intn: intn}
}

func (c *Chooser) Name() string { return "choose" }

func (c *Chooser) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	var choices []string
	for _, choice := range strings.Split(strings.Join(args, " "), ",") {
		if choice = strings.TrimSpace(choice); choice != "" {
			choices = append(choices, choice)
		}
	}

	if len(choices) == 0 {
		return models.Texts("No choices entered. Example 'choose Jollibee, Mcdo, Burger King'")
	}
	return models.Texts(choices[c.intn(len(choices))])
}
