package services

import (
	"context"
	"strings"

	"github.com/desertthunder/condoriano/internal/models"
)

const (
	birthdayCakeURL = "http://nycbirthdaycakes.com/wp-content/uploads/2015/11/birthday-cake-images-5.jpg"
	birthdayGifURL  = "https://media.giphy.com/media/3o7qE2VAxuXWeyvJIY/giphy.gif"
)

var exodiaParts = [][]string{
	{"https://vignette2.wikia.nocookie.net/yugioh/images/d/dc/ExodiatheForbiddenOne-LDK2-EN-C-1E.png"},
	{
		"https://vignette2.wikia.nocookie.net/yugioh/images/1/11/RightArmoftheForbiddenOne-LDK2-EN-C-1E.png",
		"https://vignette1.wikia.nocookie.net/yugioh/images/6/6b/LeftArmoftheForbiddenOne-LDK2-EN-C-1E.png",
	},
	{
		"https://vignette2.wikia.nocookie.net/yugioh/images/f/f1/RightLegoftheForbiddenOne-LDK2-EN-C-1E.png",
		"https://vignette4.wikia.nocookie.net/yugioh/images/f/f5/LeftLegoftheForbiddenOne-LDK2-EN-C-1E.png",
	},
}

// Birthday implements the "birthday" command.
type Birthday struct{}

func (Birthday) Name() string { return "birthday" }

func (Birthday) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	if len(args) == 0 {
		return models.Texts("No name entered. Example 'birthday John Doe'")
	}

	return []models.Chunk{models.SingleCard(models.Card{
		Title:   "Happy Birthday " + strings.Join(args, " ") + "!!",
		Text:    "Pizza naman jan!!",
		Images:  []string{birthdayCakeURL},
		Buttons: []models.CardButton{{Title: "Parteh Parteh", URL: birthdayGifURL}},
	})}
}

// Exodia implements the "exodia" command: head, arms and legs as three carousels.
type Exodia struct{}

func (Exodia) Name() string { return "exodia" }

func (Exodia) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	chunks := make([]models.Chunk, 0, len(exodiaParts))
	for _, part := range exodiaParts {
		cards := make([]models.Card, 0, len(part))
		for _, src := range part {
			cards = append(cards, models.Card{Images: []string{src}})
		}
		chunks = append(chunks, models.Carousel(cards...))
	}
	return chunks
}

// Markdown implements the "markdown" command, echoing the text back with markdown formatting.
type Markdown struct{}

func (Markdown) Name() string { return "markdown" }

func (Markdown) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	if len(args) == 0 {
		return models.Texts("No text entered. Example 'markdown **hello**'")
	}
	return []models.Chunk{models.Markdown(strings.Join(args, " "))}
}
