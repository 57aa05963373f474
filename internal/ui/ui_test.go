package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
	tu "github.com/desertthunder/condoriano/internal/testing"
)

type dispatcherFunc func(ctx context.Context, msg models.Message) []models.Chunk

func (f dispatcherFunc) Dispatch(ctx context.Context, msg models.Message) []models.Chunk {
	return f(ctx, msg)
}

var identity = models.Message{UserID: "console", UserName: "you", ConversationID: "console"}

// run executes cmd and any batched commands, feeding console messages back into m.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, m, c)
		}
	case Msg:
		_, next := m.Update(msg)
		run(t, m, next)
	}
}

func send(t *testing.T, m *Model, text string) {
	t.Helper()
	m.input.SetValue(text)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)
}

func TestModel(t *testing.T) {
	ctx := context.Background()

	t.Run("Send Dispatches As Identity", func(t *testing.T) {
		var got models.Message
		m := NewModel(ctx, dispatcherFunc(func(ctx context.Context, msg models.Message) []models.Chunk {
			got = msg
			return models.Texts("one", "two")
		}), nil, identity)

		send(t, m, "  reminders show  ")

		if got.UserID != "console" || got.Text != "reminders show" {
			t.Errorf("unexpected dispatched message %+v", got)
		}
		transcript := strings.Join(m.Transcript(), "\n")
		for _, want := range []string{"reminders show", "one", "two"} {
			if !strings.Contains(transcript, want) {
				t.Errorf("transcript missing %q:\n%s", want, transcript)
			}
		}
		if m.pending != 0 {
			t.Errorf("expected no pending dispatches, got %d", m.pending)
		}
		if m.input.Value() != "" {
			t.Error("expected input to be cleared")
		}
	})

	t.Run("Empty Input Ignored", func(t *testing.T) {
		calls := 0
		m := NewModel(ctx, dispatcherFunc(func(context.Context, models.Message) []models.Chunk {
			calls++
			return nil
		}), nil, identity)

		send(t, m, "   ")
		if calls != 0 || len(m.Transcript()) != 0 {
			t.Errorf("expected nothing dispatched, got %d calls", calls)
		}
	})

	t.Run("List View", func(t *testing.T) {
		store := tu.NewMemoryStore()
		store.Set(models.ListKey{Kind: models.Reminders, Owner: "console"}, "buy pizza", "call mom")
		m := NewModel(ctx, dispatcherFunc(func(context.Context, models.Message) []models.Chunk { return nil }), store, identity)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
		run(t, m, cmd)

		if m.view != ListView {
			t.Fatalf("expected list view, got %v", m.view)
		}
		if n := len(m.itemList.Items()); n != 2 {
			t.Errorf("expected 2 items, got %d", n)
		}
		if !strings.Contains(m.View(), "Reminders for console") {
			t.Error("expected list title in view")
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.view != ChatView {
			t.Errorf("expected esc to return to chat, got %v", m.view)
		}
	})

	t.Run("Missing List Shows Empty", func(t *testing.T) {
		m := NewModel(ctx, nil, tu.NewMemoryStore(), identity)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
		run(t, m, cmd)

		if m.view != ListView || len(m.itemList.Items()) != 0 || m.err != nil {
			t.Errorf("expected empty list view, got view=%v err=%v", m.view, m.err)
		}
	})

	t.Run("List Error Stays In Chat", func(t *testing.T) {
		m := NewModel(ctx, nil, &tu.FailingStore{Err: shared.ErrStorage}, identity)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
		run(t, m, cmd)

		if m.view != ChatView || m.err == nil {
			t.Errorf("expected error in chat view, got view=%v err=%v", m.view, m.err)
		}
		if !strings.Contains(m.View(), "Error:") {
			t.Error("expected error to be rendered")
		}
	})

	t.Run("No List Source", func(t *testing.T) {
		m := NewModel(ctx, nil, nil, identity)
		m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
		if m.err == nil {
			t.Error("expected service unavailable error")
		}
	})

	t.Run("Quit", func(t *testing.T) {
		m := NewModel(ctx, nil, nil, identity)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestRenderChunk(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		if got := RenderChunk(models.Text("hello")); got != "hello" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Card", func(t *testing.T) {
		got := RenderChunk(models.SingleCard(models.Card{
			Title:   "Happy Birthday John!!",
			Images:  []string{"https://x/cake.jpg"},
			Buttons: []models.CardButton{{Title: "Parteh Parteh", URL: "https://x/gif"}},
		}))
		for _, want := range []string{"Happy Birthday John!!", "https://x/cake.jpg", "[Parteh Parteh]"} {
			if !strings.Contains(got, want) {
				t.Errorf("card missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("Carousel", func(t *testing.T) {
		got := RenderChunk(models.Carousel(
			models.Card{Images: []string{"https://x/1.jpg"}},
			models.Card{Images: []string{"https://x/2.jpg"}},
		))
		if !strings.Contains(got, "1.jpg") || !strings.Contains(got, "2.jpg") {
			t.Errorf("carousel missing images:\n%s", got)
		}
	})
}
