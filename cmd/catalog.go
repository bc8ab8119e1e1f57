package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/scanner"
	"github.com/desertthunder/scout/internal/shared"
	"github.com/urfave/cli/v3"
)

// Competitions lists competitions from the upstream catalog, filtered to the
// configured area and format unless --all is set.
func (r *Runner) Competitions(ctx context.Context, cmd *cli.Command) error {
	opts := r.scanOpts(cmd)

	r.logger.Info("fetching competitions", "area", opts.AreaID, "format", opts.Format)

	all, err := r.catalog.Competitions(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch competitions: %w", err)
	}

	competitions := all
	if !cmd.Bool("all") {
		competitions = scanner.SelectCompetitions(all, opts.AreaID, opts.Format)
	}

	if cmd.Bool("json") {
		return r.writeJSON(competitions, cmd.Bool("pretty"))
	}

	if len(competitions) == 0 {
		r.writePlain("No competitions matched.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Competitions (%d)", len(competitions)))
	for _, c := range competitions {
		r.writePlain("%-6s %s (%s, %s)\n", c.Code, c.Name, c.Area.Name, c.Type)
	}

	return nil
}

// streakReport is the exported projection of a single team evaluation.
type streakReport struct {
	TeamID       int64 `json:"teamId"`
	Window       int   `json:"window"`
	Matches      int   `json:"matches"`
	WinStreak    bool  `json:"winStreak"`
	HighScoring  bool  `json:"highScoring"`
	GoalsWindow  int   `json:"goalsWindow"`
	GoalsMinimum int   `json:"goalsMinimum"`
}

// Streak evaluates one team's recent form against the win streak and
// high-scoring predicates.
func (r *Runner) Streak(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	teamID := int64(cmd.Int("team-id"))

	window := config.Scan.WinWindow
	if cmd.IsSet("window") {
		window = cmd.Int("window")
	}
	if window <= 0 {
		return fmt.Errorf("%w: window must be positive", shared.ErrInvalidFlag)
	}

	goalsWindow := config.Scan.GoalsWindow
	goalsThreshold := config.Scan.GoalsThreshold

	fetchLimit := window
	if goalsWindow > fetchLimit {
		fetchLimit = goalsWindow
	}

	r.logger.Info("evaluating streak", "team", teamID, "window", window)

	matches, err := r.catalog.TeamMatches(ctx, teamID, fetchLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch team matches: %w", err)
	}

	report := streakReport{
		TeamID:       teamID,
		Window:       window,
		Matches:      len(matches),
		WinStreak:    scanner.EvaluateStreak(teamID, matches, scanner.WinStreak(window)),
		HighScoring:  scanner.EvaluateStreak(teamID, matches, scanner.HighScoring(goalsWindow, goalsThreshold)),
		GoalsWindow:  goalsWindow,
		GoalsMinimum: goalsThreshold,
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Team %d", teamID))
	r.writePlain("Finished matches fetched: %d\n", report.Matches)

	if report.Matches < window {
		r.writePlain("Insufficient history for a %d-match window.\n", window)
	}

	if report.WinStreak {
		r.writePlain("✓ Won each of the last %d matches\n", window)
	} else {
		r.writePlain("✗ No %d-match win streak\n", window)
	}

	if report.HighScoring {
		r.writePlain("✓ %d+ combined goals in each of the last %d matches\n", goalsThreshold, goalsWindow)
	} else {
		r.writePlain("✗ Not on a high-scoring run\n")
	}

	for i, m := range matches {
		if i >= fetchLimit {
			break
		}
		tag := "D"
		if m.WonBy(teamID) {
			tag = "W"
		} else if m.Score.Winner != "" && m.Score.Winner != models.WinnerDraw {
			tag = "L"
		}
		r.writePlain("  %s  %s %d–%d %s\n", tag,
			m.HomeTeam.Name, goalOrZero(m.Score.FullTime.Home), goalOrZero(m.Score.FullTime.Away), m.AwayTeam.Name)
	}

	return nil
}

func goalOrZero(goals *int) int {
	if goals == nil {
		return 0
	}
	return *goals
}
