// package models defines the data model for the chat command bot
package models

import (
	"fmt"
	"strings"
	"time"
)

// GlobalOwner is the owner of singleton lists such as the reply list.
const GlobalOwner = "global"

// ListKind identifies a family of persisted lists.
type ListKind string

const (
	Reminders ListKind = "reminders"
	Replies   ListKind = "replies"
)

// ParseListKind converts a name such as "reminders" to a [ListKind].
func ParseListKind(s string) (ListKind, error) {
	switch k := ListKind(strings.ToLower(strings.TrimSpace(s))); k {
	case Reminders, Replies:
		return k, nil
	default:
		return "", fmt.Errorf("unknown list kind %q", s)
	}
}

// Singular returns the capitalized singular noun used in confirmations ("Reminder", "Reply").
func (k ListKind) Singular() string {
	switch k {
	case Reminders:
		return "Reminder"
	case Replies:
		return "Reply"
	}
	return string(k)
}

// Plural returns the command word for the kind ("reminders", "replies").
func (k ListKind) Plural() string {
	return string(k)
}

// Example returns the sample item text used in usage hints.
func (k ListKind) Example() string {
	switch k {
	case Reminders:
		return "buy pizza"
	case Replies:
		return "hello guys"
	}
	return "something"
}

// ListKey addresses one list document.
type ListKey struct {
	Kind  ListKind
	Owner string
}

func (k ListKey) String() string {
	return string(k.Kind) + "/" + k.Owner
}

// Validate checks the key can be persisted.
func (k ListKey) Validate() error {
	if _, err := ParseListKind(string(k.Kind)); err != nil {
		return err
	}
	if strings.TrimSpace(k.Owner) == "" {
		return fmt.Errorf("list owner is required")
	}
	return nil
}

// ItemList is an ordered sequence of item texts. Insertion order is display order.
type ItemList struct {
	Key       ListKey
	Items     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItemList creates an empty, unsaved list for key. Timestamps stay zero until the list is persisted.
func NewItemList(key ListKey) *ItemList {
	return &ItemList{Key: key, Items: []string{}}
}

// Len returns the number of items.
func (l *ItemList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// At returns the item at the 1-based position and whether it exists.
func (l *ItemList) At(position int) (string, bool) {
	if position < 1 || position > l.Len() {
		return "", false
	}
	return l.Items[position-1], true
}

// Append adds text at the end of the list.
func (l *ItemList) Append(text string) {
	l.Items = append(l.Items, text)
}

// RemoveAt deletes the item at the 1-based position, shifting later items down by one.
func (l *ItemList) RemoveAt(position int) (string, bool) {
	text, ok := l.At(position)
	if !ok {
		return "", false
	}
	l.Items = append(l.Items[:position-1:position-1], l.Items[position:]...)
	return text, true
}
