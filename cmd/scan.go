package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/scout/internal/formatter"
	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/scanner"
	"github.com/desertthunder/scout/internal/shared"
	"github.com/urfave/cli/v3"
)

// Scan runs a full fixture scan and prints, exports or persists the results.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	opts := r.scanOpts(cmd)
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("starting scan", "area", opts.AreaID, "format", opts.Format,
		"odds_low", opts.Band.Low, "odds_high", opts.Band.High)

	if !useJSON {
		r.writePlain("Scanning fixtures...\n")
		r.writePlain("Area: %d  Format: %s  Odds band: %s–%s\n\n",
			opts.AreaID, opts.Format, shared.FormatPrice(opts.Band.Low), shared.FormatPrice(opts.Band.High))
	}

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan scanner.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if useJSON {
				continue
			}
			switch update.Phase {
			case scanner.FetchCatalog:
				r.writePlain("📥 %s\n", update.Message)
			case scanner.ScanCompetition:
				r.writePlain("\n🔍 %s\n", update.Message)
			case scanner.CheckFixtures:
				r.writePlain("   %s\n", update.Message)
			case scanner.FlagResult:
				r.writePlain("   ✓ %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Scan(ctx, progressCh, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlain("\n")
	r.writePlainHeader("Scan Complete")
	r.writePlain("Competitions: %d\n", result.Competitions)
	r.writePlain("Fixtures checked: %d\n", result.Fixtures)
	r.writePlain("Teams evaluated: %d\n", result.TeamsEvaluated)

	if len(result.Flagged) > 0 {
		r.writePlainln("Flagged fixtures (%d):", len(result.Flagged))
		for i, flagged := range result.Flagged {
			r.writePlain("  %d. %s vs %s @ %s (%s)\n",
				i+1, flagged.Team, flagged.Opponent, shared.FormatPrice(flagged.Price), flagged.Competition)
		}
	} else {
		r.writePlainln("No fixtures flagged.")
	}

	if len(result.HighScoring) > 0 {
		r.writePlainln("High-scoring form (%d):", len(result.HighScoring))
		for _, team := range result.HighScoring {
			r.writePlain("  - %s (%s)\n", team.Team, team.Competition)
		}
	}

	if len(result.Errors) > 0 {
		r.writePlainln("Fetch failures (%d):", len(result.Errors))
		for _, fetchErr := range result.Errors {
			if fetchErr.Competition == "" {
				r.writePlain("  - catalog: %v\n", fetchErr.Err)
			} else {
				r.writePlain("  - %s: %v\n", fetchErr.Competition, fetchErr.Err)
			}
		}
	}

	if cmd.Bool("save") {
		if err := r.saveScan(cmd, opts, result); err != nil {
			return err
		}
	}

	if exportFormat := cmd.String("export"); exportFormat != "" {
		return r.exportResults(exportFormat, cmd.String("output"), result.Flagged, result.HighScoring)
	}

	return nil
}

// saveScan persists a completed scan and its flagged results.
func (r *Runner) saveScan(cmd *cli.Command, opts scanner.ScanOpts, result *scanner.ScanResult) error {
	config := r.loadConfig(cmd)

	db, repo, err := r.openScans(config)
	if err != nil {
		return err
	}
	defer db.Close()

	scan := models.NewPersistedScan(opts.AreaID, opts.Format, opts.Band.Low, opts.Band.High,
		result.Competitions, result.Fixtures, len(result.Flagged))
	if err := repo.Create(scan); err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	if err := repo.SaveFlagged(scan.ID(), result.Flagged); err != nil {
		return fmt.Errorf("failed to save flagged results: %w", err)
	}

	r.logger.Info("scan saved", "id", scan.ID(), "flagged", len(result.Flagged))
	r.writePlain("\nScan saved: %s\n", scan.ID())
	return nil
}

// exportResults writes flagged results to disk in the requested format.
func (r *Runner) exportResults(format, path string, flagged []models.FlaggedResult, highScoring []models.HighScoringTeam) error {
	switch format {
	case "csv":
		export, err := formatter.WriteCSVExport(flagged, path)
		if err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		r.writePlain("Exported to %s\n", export.ResultsFile)
	case "markdown", "md":
		written, err := formatter.WriteMarkdownExport("Scan Results", flagged, highScoring, path)
		if err != nil {
			return fmt.Errorf("failed to export markdown: %w", err)
		}
		r.writePlain("Exported to %s\n", written)
	case "text", "txt":
		written, err := formatter.WriteTextExport(flagged, highScoring, path)
		if err != nil {
			return fmt.Errorf("failed to export text: %w", err)
		}
		r.writePlain("Exported to %s\n", written)
	default:
		return fmt.Errorf("%w: invalid export format '%s' (must be csv, markdown or text)", shared.ErrInvalidFlag, format)
	}
	return nil
}
