package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/condoriano/internal/models"
)

var _ list.Item = listItem{}

// listItem wraps one entry of a [models.ItemList] to implement [list.Item].
type listItem struct {
	position int
	text     string
}

func (i listItem) FilterValue() string { return i.text }
func (i listItem) Title() string       { return i.text }
func (i listItem) Description() string {
	return fmt.Sprintf("#%d", i.position)
}

func listItems(l *models.ItemList) []list.Item {
	items := make([]list.Item, 0, l.Len())
	for i, text := range l.Items {
		items = append(items, listItem{position: i + 1, text: text})
	}
	return items
}
