package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/condoriano/internal/shared"
	tu "github.com/desertthunder/condoriano/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// run executes the CLI with args against a fresh runner sharing db.
func run(t *testing.T, db *sql.DB, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{DB: db, Output: output, Logger: shared.NewLogger(&bytes.Buffer{})})
	err := newApp(runner).Run(context.Background(), append([]string{"condoriano"}, args...))
	return output.String(), err
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient == nil || runner.httpClient.Timeout == 0 {
				t.Error("expected httpClient with a timeout")
			}
		})

		t.Run("injected database is not closed", func(t *testing.T) {
			db := setupTestDB(t)
			runner := NewRunner(RunnerOpts{DB: db})
			if err := runner.open(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			runner.Close()

			if err := db.Ping(); err != nil {
				t.Errorf("expected injected db to stay open, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		commands := NewRunner(RunnerOpts{}).register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "serve", "lists", "console", "say"} {
			if !names[want] {
				t.Errorf("expected %q to be registered", want)
			}
		}
	})
}

func TestCommands(t *testing.T) {
	t.Run("say", func(t *testing.T) {
		db := setupTestDB(t)

		out, err := run(t, db, "say", "help")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(out) != "Available Commands: images, define, choose, reminders, replies, exodia, birthday" {
			t.Errorf("unexpected output %q", out)
		}

		out, _ = run(t, db, "say", "--user", "U1", "reminders", "add", "buy", "pizza")
		if strings.TrimSpace(out) != "Reminder Added: buy pizza" {
			t.Errorf("unexpected output %q", out)
		}

		out, _ = run(t, db, "say", "--user", "U1", "reminders show")
		if strings.TrimSpace(out) != "1. buy pizza" {
			t.Errorf("unexpected output %q", out)
		}

		out, _ = run(t, db, "say", "let's", "go", "to", "the", "canteen")
		if strings.TrimSpace(out) != "Taraaaaaaaaa!!!" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("say json", func(t *testing.T) {
		db := setupTestDB(t)

		out, err := run(t, db, "say", "--json", "birthday", "John")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var chunks []struct {
			Kind  string `json:"kind"`
			Cards []struct {
				Title string `json:"title"`
			} `json:"cards"`
		}
		if err := json.Unmarshal([]byte(out), &chunks); err != nil {
			t.Fatalf("invalid JSON %q: %v", out, err)
		}
		if len(chunks) != 1 || chunks[0].Kind != "card" || chunks[0].Cards[0].Title != "Happy Birthday John!!" {
			t.Errorf("unexpected chunks %+v", chunks)
		}
	})

	t.Run("lists", func(t *testing.T) {
		db := setupTestDB(t)

		steps := []struct {
			args []string
			want string
		}{
			{[]string{"lists", "show", "--user", "U1"}, "You don't have any reminders.\nTo add reminders, send 'reminders add buy pizza'"},
			{[]string{"lists", "add", "--user", "U1", "buy", "pizza"}, "Reminder Added: buy pizza"},
			{[]string{"lists", "add", "--user", "U1", "call mom"}, "Reminder Added: call mom"},
			{[]string{"lists", "add", "--kind", "replies", "hello", "guys"}, "Reply Added: hello guys"},
			{[]string{"lists", "show", "--user", "U1"}, "1. buy pizza\n2. call mom"},
			{[]string{"lists", "show", "--user", "U2"}, "You don't have any reminders.\nTo add reminders, send 'reminders add buy pizza'"},
			{[]string{"lists", "rm", "--user", "U1", "1"}, "Reminder Removed: buy pizza"},
			{[]string{"lists", "remove", "--user", "U1", "x"}, "Specify the number of the reminder to be removed. Example 'reminders remove 2'"},
			{[]string{"lists", "show", "--kind", "replies", "--user", "anyone"}, "1. hello guys"},
		}

		for _, s := range steps {
			out, err := run(t, db, s.args...)
			if err != nil {
				t.Fatalf("%v: expected no error, got %v", s.args, err)
			}
			if strings.TrimSpace(out) != s.want {
				t.Errorf("%v: got %q, want %q", s.args, strings.TrimSpace(out), s.want)
			}
		}

		out, err := run(t, db, "lists", "owners", "--kind", "reminders")
		if err != nil {
			t.Fatalf("owners: expected no error, got %v", err)
		}
		if strings.TrimSpace(out) != "U1\t1" {
			t.Errorf("owners: unexpected output %q", out)
		}
	})

	t.Run("lists bad kind", func(t *testing.T) {
		_, err := run(t, setupTestDB(t), "lists", "show", "--kind", "todos")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("lists export", func(t *testing.T) {
		db := setupTestDB(t)
		run(t, db, "lists", "add", "--user", "U1", "buy", "pizza")

		out, err := run(t, db, "lists", "export", "--user", "U1", "--format", "csv")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out != "Position,Item\n1,buy pizza\n" {
			t.Errorf("unexpected csv %q", out)
		}

		out, err = run(t, db, "lists", "export", "--kind", "replies", "--format", "json")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, `"owner": "global"`) || !strings.Contains(out, `"count": 0`) {
			t.Errorf("expected empty global replies export, got %s", out)
		}

		path := filepath.Join(t.TempDir(), "reminders.md")
		out, err = run(t, db, "lists", "export", "--user", "U1", "--format", "md", "--output", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(out) != path {
			t.Errorf("expected path to be printed, got %q", out)
		}
		data, _ := os.ReadFile(path)
		if !strings.Contains(string(data), "1. buy pizza") {
			t.Errorf("unexpected markdown export %s", data)
		}

		if _, err := run(t, db, "lists", "export", "--format", "xml"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("lists backup", func(t *testing.T) {
		db := setupTestDB(t)
		run(t, db, "lists", "add", "--user", "U1", "buy", "pizza")
		run(t, db, "lists", "add", "--user", "U2", "call", "mom")

		dir := filepath.Join(t.TempDir(), "backup")
		out, err := run(t, db, "lists", "backup", "--format", "txt", "--dir", dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Exported 2/2 reminders to "+filepath.Join(dir, "export_manifest.json")) {
			t.Errorf("unexpected output %q", out)
		}
		for _, name := range []string{"reminders_U1.txt", "reminders_U2.txt", "export_manifest.json"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}
	})

	t.Run("setup database", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		t.Setenv("DATABASE_PATH", filepath.Join(dir, "bot.db"))

		if _, err := run(t, nil, "setup", "database", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("expected config file to be created: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "bot.db")); err != nil {
			t.Errorf("expected database file to be created: %v", err)
		}
	})
}
