package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/condoriano/internal/shared"
	"github.com/desertthunder/condoriano/internal/ui"
	"github.com/urfave/cli/v3"
)

// Console launches the interactive terminal console.
func (r *Runner) Console(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with console rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	if err := r.open(ctx); err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.router, r.repo, identity(cmd))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running console: %w", err)
	}

	return nil
}

// Say dispatches the arguments as one chat message and prints the reply.
func (r *Runner) Say(ctx context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")
	if err := r.open(ctx); err != nil {
		return err
	}

	msg := identity(cmd)
	msg.Text = text
	return r.writeChunks(r.router.Dispatch(ctx, msg), cmd.Bool("json"))
}
