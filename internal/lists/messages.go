package lists

import (
	"fmt"

	"github.com/desertthunder/condoriano/internal/models"
)

// Unrecognized is the reply for an action other than show, add or remove.
const Unrecognized = "Unrecognized action. Available actions: show, add, remove"

// Broken is the reply when the fallback reply list cannot be read.
const Broken = "i'm broken. Send help... :("

// messages holds the user-visible strings for one list kind.
type messages struct {
	noAction    string
	empty       []string
	fetchErr    string
	addHint     string
	addErr      string
	addSaveErr  string
	removeHint  string
	numberHint  string
	removeErr   string
	removeSave  string
	noItemFmt   string
	addedFmt    string
	removedFmt  string
	defaultHint string
}

func messagesFor(kind models.ListKind) messages {
	singular, plural, example := kind.Singular(), kind.Plural(), kind.Example()
	lower := map[models.ListKind]string{models.Reminders: "reminder", models.Replies: "reply"}[kind]
	if lower == "" {
		lower = singular
	}

	m := messages{
		noAction:    fmt.Sprintf("No action entered. Examples '%[1]s show', '%[1]s add %[2]s', '%[1]s remove 1'", plural, example),
		empty:       []string{fmt.Sprintf("You don't have any %s.", plural), fmt.Sprintf("To add %[1]s, send '%[1]s add %[2]s'", plural, example)},
		fetchErr:    fmt.Sprintf("Error on fetching %s.", plural),
		addHint:     fmt.Sprintf("Specify which %s to add. Example: '%s add %s'", lower, plural, example),
		addErr:      fmt.Sprintf("Error on adding %s.", lower),
		addSaveErr:  fmt.Sprintf("Error on saving %s.", lower),
		removeHint:  fmt.Sprintf("Specify which %s to remove. Example: '%s remove 1'", lower, plural),
		numberHint:  fmt.Sprintf("Specify the number of the %s to be removed. Example '%s remove 2'", lower, plural),
		removeErr:   fmt.Sprintf("Error on removing %s.", lower),
		removeSave:  fmt.Sprintf("Error on saving %s.", lower),
		noItemFmt:   "You have no " + lower + " with number: %s",
		addedFmt:    singular + " Added: %s",
		removedFmt:  singular + " Removed: %s",
		defaultHint: fmt.Sprintf("To add default %[1]s, send '%[1]s add %[2]s'", plural, example),
	}

	if kind == models.Replies {
		m.empty = []string{"No replies retrieved.", fmt.Sprintf("To add replies, send 'replies add %s'", example)}
		m.addHint = fmt.Sprintf("Specify the reply to add. Example: 'replies add %s'", example)
		m.removeSave = "Error on updating replies."
		m.noAction = "No action entered. Examples 'replies show', 'replies add hello friends', 'replies remove 1'"
	}
	return m
}
