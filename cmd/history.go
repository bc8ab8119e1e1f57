package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/scout/internal/repositories"
	"github.com/desertthunder/scout/internal/shared"
	"github.com/urfave/cli/v3"
)

// scanSummary is the exported projection of a persisted scan for output.
type scanSummary struct {
	ID           string  `json:"id"`
	Sequence     int     `json:"sequence"`
	AreaID       int64   `json:"areaId"`
	Format       string  `json:"format"`
	OddsLow      float64 `json:"oddsLow"`
	OddsHigh     float64 `json:"oddsHigh"`
	Competitions int     `json:"competitions"`
	Fixtures     int     `json:"fixtures"`
	FlaggedCount int     `json:"flaggedCount"`
	CreatedAt    string  `json:"createdAt"`
}

// openScans opens the configured database and returns a scan repository.
// The caller owns the returned handle.
func (r *Runner) openScans(config *shared.Config) (*sql.DB, *repositories.ScanRepository, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, repositories.NewScanRepository(db), nil
}

// HistoryList lists saved scans, most recent first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	limit := cmd.Int("limit")

	db, repo, err := r.openScans(config)
	if err != nil {
		return err
	}
	defer db.Close()

	scans, err := repo.List(map[string]any{"limit": limit})
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}

	summaries := make([]scanSummary, 0, len(scans))
	for _, scan := range scans {
		summaries = append(summaries, scanSummary{
			ID:           scan.ID(),
			Sequence:     scan.Sequence(),
			AreaID:       scan.AreaID(),
			Format:       scan.Format(),
			OddsLow:      scan.OddsLow(),
			OddsHigh:     scan.OddsHigh(),
			Competitions: scan.Competitions(),
			Fixtures:     scan.Fixtures(),
			FlaggedCount: scan.FlaggedCount(),
			CreatedAt:    scan.CreatedAt().Format("2006-01-02 15:04"),
		})
	}

	if cmd.Bool("json") {
		return r.writeJSON(summaries, cmd.Bool("pretty"))
	}

	if len(summaries) == 0 {
		r.writePlain("No saved scans.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Saved Scans (%d)", len(summaries)))
	for _, s := range summaries {
		r.writePlain("#%d  %s\n", s.Sequence, s.ID)
		r.writePlain("    area %d, format %s, odds %s–%s\n",
			s.AreaID, s.Format, shared.FormatPrice(s.OddsLow), shared.FormatPrice(s.OddsHigh))
		r.writePlain("    %d competitions, %d fixtures, %d flagged (%s)\n",
			s.Competitions, s.Fixtures, s.FlaggedCount, s.CreatedAt)
	}

	return nil
}

// HistoryShow prints the flagged results from one saved scan.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: scan id is required", shared.ErrMissingArgument)
	}

	db, repo, err := r.openScans(config)
	if err != nil {
		return err
	}
	defer db.Close()

	scan, err := repo.Get(id)
	if err != nil {
		return err
	}

	flagged, err := repo.Flagged(id)
	if err != nil {
		return fmt.Errorf("failed to load flagged results: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(flagged, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Scan #%d", scan.Sequence()))
	r.writePlain("Area %d, format %s, odds %s–%s\n",
		scan.AreaID(), scan.Format(), shared.FormatPrice(scan.OddsLow()), shared.FormatPrice(scan.OddsHigh()))
	r.writePlain("Run at %s\n", scan.CreatedAt().Format("2006-01-02 15:04"))

	if len(flagged) == 0 {
		r.writePlainln("No flagged fixtures.")
		return nil
	}

	r.writePlainln("Flagged fixtures (%d):", len(flagged))
	for i, result := range flagged {
		r.writePlain("  %d. %s vs %s @ %s (%s)\n",
			i+1, result.Team, result.Opponent, shared.FormatPrice(result.Price), result.Competition)
	}

	return nil
}

// HistoryExport writes the flagged results from a saved scan to disk.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: scan id is required", shared.ErrMissingArgument)
	}

	db, repo, err := r.openScans(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := repo.Get(id); err != nil {
		return err
	}

	flagged, err := repo.Flagged(id)
	if err != nil {
		return fmt.Errorf("failed to load flagged results: %w", err)
	}

	return r.exportResults(cmd.String("export"), cmd.String("output"), flagged, nil)
}

// HistoryDelete removes a saved scan.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: scan id is required", shared.ErrMissingArgument)
	}

	db, repo, err := r.openScans(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.Delete(id); err != nil {
		return err
	}

	r.logger.Info("scan deleted", "id", id)
	r.writePlain("Deleted scan %s\n", id)
	return nil
}
