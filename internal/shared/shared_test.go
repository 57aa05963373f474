package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRest(t *testing.T) {
	tc := []struct {
		name string
		text string
		n    int
		want string
	}{
		{name: "drops command and action", text: "reminders add buy pizza", n: 2, want: "buy pizza"},
		{name: "collapses whitespace", text: "reminders  add   buy \t pizza ", n: 2, want: "buy pizza"},
		{name: "nothing after action", text: "reminders add", n: 2, want: ""},
		{name: "empty text", text: "", n: 1, want: ""},
		{name: "zero offset", text: " a b ", n: 0, want: "a b"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rest(tt.text, tt.n); got != tt.want {
				t.Errorf("Rest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	t.Run("ParseLogLevel", func(t *testing.T) {
		if got := ParseLogLevel("DEBUG"); got != log.DebugLevel {
			t.Errorf("expected debug level, got %v", got)
		}
		if got := ParseLogLevel("nonsense"); got != log.InfoLevel {
			t.Errorf("expected info level fallback, got %v", got)
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("hello")

		if !strings.Contains(buf.String(), "component=test") {
			t.Errorf("expected child logger fields in output, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "bot.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("written")
	})

	t.Run("GenerateID", func(t *testing.T) {
		a, b := GenerateID(), GenerateID()
		if a == "" || a == b {
			t.Errorf("expected unique non-empty IDs, got %q and %q", a, b)
		}
	})
}
