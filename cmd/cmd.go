// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func userFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "User ID to act as",
		Value:   "console",
	}
}

func kindFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Usage:   "List kind: reminders or replies",
		Value:   "reminders",
	}
}

// setupCommand handles setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create config if missing, initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.Rollback,
			},
		},
	}
}

// serveCommand runs the webhook server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the chat webhook server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides server.port and PORT)",
			},
		},
		Action: r.Serve,
	}
}

// listsCommand gives operators direct access to reminders and replies.
func listsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "lists",
		Aliases: []string{"list"},
		Usage:   "Inspect and edit reminders and replies",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show a list the way the bot replies to 'show'",
				Flags:  []cli.Flag{kindFlag(), userFlag()},
				Action: r.ListsShow,
			},
			{
				Name:      "add",
				Usage:     "Add an item",
				ArgsUsage: "<text>",
				Flags:     []cli.Flag{kindFlag(), userFlag()},
				Action:    r.ListsAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove an item by its 1-based position",
				ArgsUsage: "<position>",
				Flags:     []cli.Flag{kindFlag(), userFlag()},
				Action:    r.ListsRemove,
			},
			{
				Name:  "owners",
				Usage: "List every stored list of a kind with its item count",
				Flags: []cli.Flag{
					kindFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ListsOwners,
			},
			{
				Name:  "export",
				Usage: "Export a list to json, csv, markdown or txt",
				Flags: []cli.Flag{
					kindFlag(),
					userFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout, or {kind}_{owner}.{ext} with --save)",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Write to a file instead of stdout",
					},
				},
				Action: r.ListsExport,
			},
			{
				Name:  "backup",
				Usage: "Export every stored list of a kind to a directory with a manifest",
				Flags: []cli.Flag{
					kindFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Output directory (default: {kind}_export_{epoch})",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Concurrent writers",
						Value:   4,
					},
				},
				Action: r.ListsBackup,
			},
		},
	}
}

// consoleCommand launches the interactive console.
func consoleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "console",
		Aliases: []string{"tui", "ui"},
		Usage:   "Chat with the bot in an interactive terminal console",
		Flags: []cli.Flag{
			userFlag(),
			&cli.StringFlag{
				Name:  "name",
				Usage: "Display name",
				Value: "you",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the console owns the terminal",
				Value: "./tmp/condoriano-console.log",
			},
		},
		Action: r.Console,
	}
}

// sayCommand dispatches one message and prints the reply.
func sayCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:            "say",
		Usage:           "Send one message to the bot and print each reply chunk",
		ArgsUsage:       "<message>",
		HideHelpCommand: true, // "help" is a bot command here
		Flags: []cli.Flag{
			userFlag(),
			&cli.StringFlag{
				Name:  "name",
				Usage: "Display name",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print chunks as JSON",
			},
		},
		Action: r.Say,
	}
}
