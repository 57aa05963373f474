package models

import "testing"

func TestItemList(t *testing.T) {
	t.Run("RemoveAt shifts later items", func(t *testing.T) {
		list := NewItemList(ListKey{Kind: Reminders, Owner: "U1"})
		for _, s := range []string{"a", "b", "c"} {
			list.Append(s)
		}

		text, ok := list.RemoveAt(2)
		if !ok || text != "b" {
			t.Fatalf("RemoveAt(2) = %q, %v", text, ok)
		}

		if got, _ := list.At(2); got != "c" {
			t.Errorf("expected c at position 2, got %q", got)
		}
		if list.Len() != 2 {
			t.Errorf("expected 2 items, got %d", list.Len())
		}
	})

	t.Run("RemoveAt out of range", func(t *testing.T) {
		list := NewItemList(ListKey{Kind: Replies, Owner: GlobalOwner})
		list.Append("only")

		for _, pos := range []int{0, -1, 2} {
			if _, ok := list.RemoveAt(pos); ok {
				t.Errorf("RemoveAt(%d) should fail", pos)
			}
		}
		if list.Len() != 1 {
			t.Errorf("list should be unchanged, got %v", list.Items)
		}
	})

	t.Run("new list is unsaved", func(t *testing.T) {
		list := NewItemList(ListKey{Kind: Reminders, Owner: "U1"})
		if !list.CreatedAt.IsZero() || !list.UpdatedAt.IsZero() {
			t.Errorf("expected zero timestamps, got %v / %v", list.CreatedAt, list.UpdatedAt)
		}
		if list.Items == nil || list.Len() != 0 {
			t.Errorf("expected empty non-nil items, got %#v", list.Items)
		}
	})

	t.Run("nil list has zero length", func(t *testing.T) {
		var list *ItemList
		if list.Len() != 0 {
			t.Error("expected zero length")
		}
		if _, ok := list.At(1); ok {
			t.Error("expected no item in nil list")
		}
	})
}

func TestParseAction(t *testing.T) {
	tc := []struct {
		token string
		want  Action
	}{
		{"", ActionNone},
		{"show", ActionShow},
		{"SHOW", ActionShow},
		{"Add", ActionAdd},
		{"remove", ActionRemove},
		{"delete", ActionUnrecognized},
	}

	for _, tt := range tc {
		t.Run(tt.token, func(t *testing.T) {
			if got := ParseAction(tt.token); got != tt.want {
				t.Errorf("ParseAction(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestListKind(t *testing.T) {
	if k, err := ParseListKind(" Replies "); err != nil || k != Replies {
		t.Errorf("ParseListKind() = %v, %v", k, err)
	}
	if _, err := ParseListKind("todos"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if Reminders.Singular() != "Reminder" || Replies.Singular() != "Reply" {
		t.Error("unexpected singular labels")
	}
	if err := (ListKey{Kind: Reminders}).Validate(); err == nil {
		t.Error("expected error for empty owner")
	}
}

func TestActivity(t *testing.T) {
	inbound := Activity{
		Type:         ActivityMessage,
		ID:           "act-1",
		ServiceURL:   "https://smba.example.com",
		From:         Account{ID: "U1", Name: "Juan"},
		Recipient:    Account{ID: "B1", Name: "Condoriano"},
		Conversation: Account{ID: "C1"},
		Text:         "hi",
	}

	t.Run("Address", func(t *testing.T) {
		conv := inbound.Address()
		if conv.ID != "C1" || conv.ServiceURL != "https://smba.example.com" || conv.ReplyToID != "act-1" {
			t.Errorf("unexpected address %+v", conv)
		}
		if conv.Bot.ID != "B1" || conv.User.ID != "U1" {
			t.Errorf("expected bot and user swapped into the address, got %+v", conv)
		}
	})

	t.Run("Chunk Activity", func(t *testing.T) {
		conv := inbound.Address()

		text := Text("hello").Activity(conv)
		if text.Type != ActivityMessage || text.Text != "hello" || text.TextFormat != TextFormatPlain {
			t.Errorf("unexpected text activity %+v", text)
		}
		if text.From.ID != "B1" || text.Recipient.ID != "U1" || text.Conversation.ID != "C1" {
			t.Errorf("expected reply addressed from bot to user, got %+v", text)
		}

		md := Markdown("**hi**").Activity(conv)
		if md.TextFormat != TextFormatMarkdown {
			t.Errorf("expected markdown format, got %q", md.TextFormat)
		}

		card := Card{Title: "t", Images: []string{"https://x/1.jpg"}, Buttons: []CardButton{{Title: "Open", URL: "https://x"}}}
		carousel := Carousel(card, card).Activity(conv)
		if carousel.AttachmentLayout != LayoutCarousel || len(carousel.Attachments) != 2 {
			t.Fatalf("unexpected carousel activity %+v", carousel)
		}

		hero, ok := carousel.Attachments[0].Content.(HeroCard)
		if !ok {
			t.Fatalf("expected hero card content, got %T", carousel.Attachments[0].Content)
		}
		if hero.Images[0].URL != "https://x/1.jpg" || hero.Buttons[0].Type != "openUrl" || hero.Buttons[0].Value != "https://x" {
			t.Errorf("unexpected hero card %+v", hero)
		}

		single := SingleCard(card).Activity(conv)
		if single.AttachmentLayout != "" || len(single.Attachments) != 1 {
			t.Errorf("unexpected single card activity %+v", single)
		}
	})
}
