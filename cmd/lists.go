package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/condoriano/internal/formatter"
	"github.com/desertthunder/condoriano/internal/lists"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
	"github.com/desertthunder/condoriano/internal/tasks"
	"github.com/urfave/cli/v3"
)

// engine builds the list engine for the --kind flag over the runner's repository.
func (r *Runner) engine(ctx context.Context, cmd *cli.Command) (*lists.Engine, error) {
	kind, err := models.ParseListKind(cmd.String("kind"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}
	if err := r.open(ctx); err != nil {
		return nil, err
	}

	key := lists.Singleton(kind)
	if kind == models.Reminders {
		key = lists.PerUser(kind)
	}
	return lists.NewEngine(lists.EngineOpts{Kind: kind, Key: key, Store: r.repo, Logger: r.logger}), nil
}

// listKey resolves the stored key the --kind and --user flags point at.
func listKey(cmd *cli.Command) (models.ListKey, error) {
	kind, err := models.ParseListKind(cmd.String("kind"))
	if err != nil {
		return models.ListKey{}, fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}
	if kind == models.Replies {
		return models.ListKey{Kind: kind, Owner: models.GlobalOwner}, nil
	}
	return models.ListKey{Kind: kind, Owner: cmd.String("user")}, nil
}

// ListsShow prints the list exactly as the bot would reply.
func (r *Runner) ListsShow(ctx context.Context, cmd *cli.Command) error {
	e, err := r.engine(ctx, cmd)
	if err != nil {
		return err
	}
	return r.writeChunks(e.Show(ctx, identity(cmd)), false)
}

// ListsAdd appends the joined arguments as one item.
func (r *Runner) ListsAdd(ctx context.Context, cmd *cli.Command) error {
	e, err := r.engine(ctx, cmd)
	if err != nil {
		return err
	}
	return r.writeChunks(e.Add(ctx, identity(cmd), strings.Join(cmd.Args().Slice(), " ")), false)
}

// ListsRemove removes the item at the 1-based position given as the first argument.
func (r *Runner) ListsRemove(ctx context.Context, cmd *cli.Command) error {
	e, err := r.engine(ctx, cmd)
	if err != nil {
		return err
	}
	return r.writeChunks(e.Remove(ctx, identity(cmd), cmd.Args().First()), false)
}

// ListsOwners prints every stored list of a kind with its item count.
func (r *Runner) ListsOwners(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseListKind(cmd.String("kind"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	all, err := r.repo.List(ctx, kind)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type owner struct {
			Owner string `json:"owner"`
			Count int    `json:"count"`
		}
		out := make([]owner, 0, len(all))
		for _, l := range all {
			out = append(out, owner{Owner: l.Key.Owner, Count: l.Len()})
		}
		return r.writeJSON(out, true)
	}

	for _, l := range all {
		if err := r.writePlain("%s\t%d\n", l.Key.Owner, l.Len()); err != nil {
			return err
		}
	}
	return nil
}

// ListsExport renders a list with the formatter, to stdout or to a file.
func (r *Runner) ListsExport(ctx context.Context, cmd *cli.Command) error {
	key, err := listKey(cmd)
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	list, err := r.repo.GetList(ctx, key)
	if errors.Is(err, shared.ErrListNotFound) {
		list = models.NewItemList(key)
	} else if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" || cmd.Bool("save") {
		path, err := formatter.WriteExport(list, format, output)
		if err != nil {
			return err
		}
		r.logger.Info("list exported", "key", key, "path", path)
		return r.writePlain("%s\n", path)
	}

	data, err := formatter.Export(list, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// ListsBackup writes every stored list of a kind to its own file, printing progress as it goes.
func (r *Runner) ListsBackup(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseListKind(cmd.String("kind"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	prog := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := tasks.NewExporter(r.repo, r.logger).BulkExport(ctx, prog, kind, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	return r.writePlain("Exported %d/%d %s to %s\n",
		result.SuccessfulExports, result.TotalLists, kind.Plural(), result.ManifestPath)
}
