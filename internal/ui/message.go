package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/condoriano/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the console (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgReplyReceived MsgKind = iota
	MsgListLoaded
)

type replyData struct {
	chunks []models.Chunk
}

type listData struct {
	list *models.ItemList
	err  error
}

// replyReceivedMsg is the constructor for [MsgReplyReceived]
func replyReceivedMsg(chunks []models.Chunk) Msg {
	return Msg{kind: MsgReplyReceived, data: replyData{chunks: chunks}}
}

// listLoadedMsg is the constructor for [MsgListLoaded]
func listLoadedMsg(list *models.ItemList, err error) Msg {
	return Msg{kind: MsgListLoaded, data: listData{list: list, err: err}}
}
