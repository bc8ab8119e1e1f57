// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// scanFlags are shared by every command that runs the scan engine.
func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.IntFlag{
			Name:  "area",
			Usage: "Area ID to scan (defaults to configured area)",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Competition format filter (eg. LEAGUE)",
		},
		&cli.FloatFlag{
			Name:  "odds-low",
			Usage: "Lower bound of the odds band (inclusive)",
		},
		&cli.FloatFlag{
			Name:  "odds-high",
			Usage: "Upper bound of the odds band (inclusive)",
		},
	}
}

// scanCommand runs a full fixture scan across the selected competitions.
func scanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Scan upcoming fixtures for win streaks inside the odds band",
		Flags: append(scanFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Persist scan results to the local database",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Export format (csv, markdown or text)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path for exports",
			},
		),
		Action: r.Scan,
	}
}

// competitionsCommand lists competitions from the upstream catalog.
func competitionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "competitions",
		Aliases: []string{"comps"},
		Usage:   "List competitions matching the area and format filters",
		Flags: append(scanFlags(),
			&cli.BoolFlag{
				Name:  "all",
				Usage: "List every competition, ignoring filters",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		),
		Action: r.Competitions,
	}
}

// streakCommand evaluates recent form for a single team.
func streakCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "streak",
		Usage: "Evaluate a single team's recent form",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:     "team-id",
				Usage:    "Team ID to evaluate",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "window",
				Usage: "Number of finished matches to evaluate",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Streak,
	}
}

// historyCommand manages persisted scan results.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse and export saved scans",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved scans",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of scans to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "show",
				Usage: "Show flagged results from a saved scan",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:  "export",
				Usage: "Export flagged results from a saved scan",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:  "export",
						Usage: "Export format (csv, markdown or text)",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.HistoryExport,
			},
			{
				Name:  "delete",
				Usage: "Delete a saved scan",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.HistoryDelete,
			},
		},
	}
}

// apiCommand handles direct calls against the football-data API
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to football-data.org",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET against the API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:   "check",
				Usage:  "Verify the configured API token",
				Action: r.APICheck,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
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
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive scanning.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for fixture scanning",
		Flags:   scanFlags(),
		Action:  r.TUI,
	}
}
