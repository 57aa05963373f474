package bot

import (
	"fmt"
	"strings"

	"github.com/desertthunder/condoriano/internal/models"
)

// DefaultName is the bot's display name when none is configured.
const DefaultName = "Condoriano"

// StripMention removes the first "@<botName> " from text and trims surrounding whitespace.
func StripMention(text, botName string) string {
	if botName == "" {
		botName = DefaultName
	}
	return strings.TrimSpace(strings.Replace(text, "@"+botName+" ", "", 1))
}

// Adapt reduces an inbound activity to the [models.Message] handlers see.
func Adapt(a models.Activity, botName string) models.Message {
	return models.Message{
		UserID:         a.From.ID,
		UserName:       a.From.Name,
		ConversationID: a.Conversation.ID,
		Text:           StripMention(a.Text, botName),
	}
}

// Greeting is sent when a user adds the bot as a contact.
func Greeting(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hello %s... Thanks for adding me. Say 'commands' to see the commands available.", name)
}
