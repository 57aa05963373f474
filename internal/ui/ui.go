package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

// ViewState represents the current view in the console.
type ViewState int

const (
	ChatView ViewState = iota
	ListView
)

const maxTranscript = 200

// Dispatcher turns a message into reply chunks.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg models.Message) []models.Chunk
}

// ListSource reads a stored list.
type ListSource interface {
	GetList(ctx context.Context, key models.ListKey) (*models.ItemList, error)
}

// Model represents the console state.
type Model struct {
	ctx        context.Context
	view       ViewState
	dispatcher Dispatcher
	lists      ListSource
	user       models.Message
	input      textinput.Model
	spinner    spinner.Model
	pending    int
	transcript []string
	itemList   list.Model
	width      int
	height     int
	err        error
	help       help.Model
	keys       keyMap
}

// NewModel creates a console that speaks as the user in identity. lists may be nil, disabling the list view.
func NewModel(ctx context.Context, d Dispatcher, lists ListSource, identity models.Message) *Model {
	input := textinput.New()
	input.Placeholder = "say something, e.g. 'reminders add buy pizza'"
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		ctx:        ctx,
		view:       ChatView,
		dispatcher: d,
		lists:      lists,
		user:       identity,
		input:      input,
		spinner:    s,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		if m.view == ListView {
			m.itemList.SetSize(msg.Width-4, msg.Height-4)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.view {
		case ChatView:
			return m.handleChatKeys(msg)
		case ListView:
			return m.handleListKeys(msg)
		}

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgReplyReceived:
		data := msg.data.(replyData)
		m.pending--
		for _, chunk := range data.chunks {
			m.appendLine(styles.bot.Render("bot") + " " + RenderChunk(chunk))
		}
		return m, nil

	case MsgListLoaded:
		data := msg.data.(listData)
		if errors.Is(data.err, shared.ErrListNotFound) {
			data.err = nil
		}
		if data.err != nil {
			m.err = data.err
			m.view = ChatView
			return m, nil
		}

		m.err = nil
		m.itemList = list.New(listItems(data.list), list.NewDefaultDelegate(), 0, 0)
		m.itemList.Title = listTitle(data.list.Key)
		m.itemList.SetSize(max(m.width-4, 60), max(m.height-4, 12))
		m.view = ListView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.send):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		m.appendLine(styles.user.Render(m.userLabel()) + " " + text)
		m.pending++
		return m, tea.Batch(m.dispatch(text), m.spinner.Tick)

	case key.Matches(msg, m.keys.reminders):
		return m, m.loadList(models.ListKey{Kind: models.Reminders, Owner: m.user.UserID})

	case key.Matches(msg, m.keys.replies):
		return m, m.loadList(models.ListKey{Kind: models.Replies, Owner: models.GlobalOwner})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) && m.itemList.FilterState() == list.Unfiltered {
		m.view = ChatView
		return m, nil
	}

	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m *Model) dispatch(text string) tea.Cmd {
	msg := m.user
	msg.Text = text
	return func() tea.Msg {
		return replyReceivedMsg(m.dispatcher.Dispatch(m.ctx, msg))
	}
}

func (m *Model) loadList(k models.ListKey) tea.Cmd {
	if m.lists == nil {
		m.err = fmt.Errorf("%w: no list storage", shared.ErrServiceUnavailable)
		return nil
	}
	return func() tea.Msg {
		l, err := m.lists.GetList(m.ctx, k)
		if l == nil {
			l = models.NewItemList(k)
		}
		return listLoadedMsg(l, err)
	}
}

func (m *Model) appendLine(line string) {
	m.transcript = append(m.transcript, line)
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}
}

func (m *Model) userLabel() string {
	if m.user.UserName != "" {
		return m.user.UserName
	}
	return m.user.UserID
}

// Transcript returns the rendered conversation so far.
func (m *Model) Transcript() []string {
	return append([]string{}, m.transcript...)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ListView:
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", m.itemList.View(), helpView)
	default:
		return m.renderChat()
	}
}

func (m *Model) renderChat() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("condoriano console"))
	b.WriteString("\n")

	lines := m.transcript
	if m.height > 8 && len(lines) > m.height-8 {
		lines = lines[len(lines)-(m.height-8):]
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}

	if m.pending > 0 {
		b.WriteString(m.spinner.View() + styles.help.Render(" thinking..."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// RenderChunk renders one reply chunk for the terminal.
func RenderChunk(c models.Chunk) string {
	switch c.Kind {
	case models.ChunkCard, models.ChunkCarousel:
		boxes := make([]string, 0, len(c.Cards))
		for _, card := range c.Cards {
			boxes = append(boxes, styles.card.Render(renderCard(card)))
		}
		if c.Kind == models.ChunkCarousel {
			return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
		}
		return lipgloss.JoinVertical(lipgloss.Left, boxes...)
	case models.ChunkMarkdown:
		return styles.warn.Render(c.Text)
	default:
		return c.Text
	}
}

func renderCard(card models.Card) string {
	var lines []string
	if card.Title != "" {
		lines = append(lines, styles.user.Render(card.Title))
	}
	if card.Text != "" {
		lines = append(lines, card.Text)
	}
	for _, src := range card.Images {
		lines = append(lines, styles.help.Render("image: "+src))
	}
	for _, b := range card.Buttons {
		lines = append(lines, fmt.Sprintf("[%s] %s", b.Title, b.URL))
	}
	return strings.Join(lines, "\n")
}

func listTitle(k models.ListKey) string {
	if k.Owner == models.GlobalOwner {
		return "Replies"
	}
	return fmt.Sprintf("Reminders for %s", k.Owner)
}
