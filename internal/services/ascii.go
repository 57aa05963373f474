package services

import (
	"context"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/desertthunder/condoriano/internal/models"
)

// ASCII implements the "ascii" command, rendering text as FIGlet art inside a code fence.
type ASCII struct {
	font string
}

// NewASCII creates an [ASCII] renderer. An empty font uses the FIGlet "standard" font.
func NewASCII(font string) *ASCII {
	return &ASCII{font: font}
}

func (a *ASCII) Name() string { return "ascii" }

func (a *ASCII) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	text := strings.Join(args, " ")
	if text == "" {
		return models.Texts("No text entered. Example 'ascii hello'")
	}
	return models.Texts("``` " + a.Render(text) + " ```")
}

// Render returns the FIGlet rendering of text. Characters missing from the font are replaced rather than rejected.
func (a *ASCII) Render(text string) string {
	return figure.NewFigure(text, a.font, false).String()
}
