// package scanner implements the streak-evaluation and fixture-scan pipeline.
//
// The core abstraction is Engine, which orchestrates competition selection,
// per-team streak evaluation, and odds-band filtering over scheduled fixtures.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers. The package performs no output of its own.
package scanner

import (
	"context"
	"fmt"
	"sort"

	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/services"
	"github.com/desertthunder/scout/internal/shared"
	"golang.org/x/time/rate"
)

// OddsBand is the closed interval a quoted price must fall within for a
// fixture to be flagged. Both bounds are inclusive.
type OddsBand struct {
	Low  float64
	High float64
}

// Contains reports whether price lies within the band.
func (b OddsBand) Contains(price float64) bool {
	return price >= b.Low && price <= b.High
}

// ScanOpts contains the parameters for one scan run.
type ScanOpts struct {
	AreaID         int64    // governing region to select competitions from
	Format         string   // "LEAGUE", "CUP", or "" for both
	Band           OddsBand // odds band for flagging
	WinWindow      int      // win-streak window (default 5)
	GoalsWindow    int      // high-scoring window (default 4)
	GoalsThreshold int      // combined goals per match (default 3)
}

func (o *ScanOpts) applyDefaults() {
	if o.WinWindow <= 0 {
		o.WinWindow = DefaultWinWindow
	}
	if o.GoalsWindow <= 0 {
		o.GoalsWindow = DefaultGoalsWindow
	}
	if o.GoalsThreshold <= 0 {
		o.GoalsThreshold = DefaultGoalsThreshold
	}
}

// FetchError records a fail-soft upstream failure for one fetch site.
// The scan continues past these; they are reported, never raised.
type FetchError struct {
	Competition string // competition code, or "" for the catalog fetch
	Err         error
}

// ScanResult contains all data from one completed scan.
type ScanResult struct {
	Flagged        []models.FlaggedResult   // discovery order: competition, fixture, home before away
	HighScoring    []models.HighScoringTeam // sorted by (competition name, team name)
	Competitions   int                      // competitions scanned
	Fixtures       int                      // fixtures checked
	TeamsEvaluated int                      // distinct teams resolved through the cache
	Errors         []FetchError             // fail-soft fetch failures
}

// Engine orchestrates fixture scans against an injected catalog provider.
type Engine struct {
	catalog services.Catalog
	limiter *rate.Limiter
}

// NewEngine creates an Engine over the given catalog provider.
// requestsPerSecond paces competition fetches against the upstream request
// quota; zero or negative disables pacing (used in tests).
func NewEngine(catalog services.Catalog, requestsPerSecond float64) *Engine {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Engine{catalog: catalog, limiter: limiter}
}

// SelectCompetitions filters a catalog to competitions governed by the given
// area, optionally restricted to one format tag. Input order is preserved.
// A nil or empty catalog yields an empty selection.
func SelectCompetitions(all []models.Competition, areaID int64, format string) []models.Competition {
	selected := make([]models.Competition, 0, len(all))
	for _, c := range all {
		if c.Area.ID != areaID {
			continue
		}
		if format != "" && c.Type != format {
			continue
		}
		selected = append(selected, c)
	}
	return selected
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks the scan.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Scan runs the full pipeline: select competitions, fetch each one's
// scheduled fixtures, evaluate both participants of every fixture against
// the win-streak and high-scoring predicates, and collect flagged results.
//
// Every fetch site is fail-soft: an upstream failure becomes an empty result
// for that call and an entry in ScanResult.Errors. The only error returns
// are an uninitialized catalog and context cancellation.
func (e *Engine) Scan(ctx context.Context, progress chan<- ProgressUpdate, opts ScanOpts) (*ScanResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	opts.applyDefaults()

	winPred := WinStreak(opts.WinWindow)
	goalsPred := HighScoring(opts.GoalsWindow, opts.GoalsThreshold)

	// One window serves both predicates: fetch the longer one and each
	// predicate reads its own prefix of the most-recent-first list.
	fetchLimit := opts.WinWindow
	if opts.GoalsWindow > fetchLimit {
		fetchLimit = opts.GoalsWindow
	}

	result := &ScanResult{}

	e.sendProgress(progress, fetchCatalogUpdate())

	catalog, err := e.catalog.Competitions(ctx)
	if err != nil {
		result.Errors = append(result.Errors, FetchError{Err: err})
		catalog = nil
	}

	selected := SelectCompetitions(catalog, opts.AreaID, opts.Format)
	result.Competitions = len(selected)
	e.sendProgress(progress, selectedCompetitionsUpdate(len(selected)))

	// Cache is scoped to this invocation; a fresh one per scan keeps
	// windows stable without any cross-scan coordination.
	cache := newTeamCache(e.catalog, fetchLimit)
	highScoring := make(map[models.HighScoringTeam]struct{})

	for i, comp := range selected {
		select {
		case <-ctx.Done():
			result.TeamsEvaluated = cache.size()
			return result, ctx.Err()
		default:
		}

		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				result.TeamsEvaluated = cache.size()
				return result, err
			}
		}

		e.sendProgress(progress, scanCompetitionUpdate(i+1, len(selected), comp.Name))

		fixtures, err := e.catalog.ScheduledFixtures(ctx, comp.Code)
		if err != nil {
			result.Errors = append(result.Errors, FetchError{Competition: comp.Code, Err: err})
			continue
		}

		e.sendProgress(progress, checkFixturesUpdate(i+1, len(selected), len(fixtures), comp.Name))

		for _, fixture := range fixtures {
			result.Fixtures++

			sides := []struct {
				team     models.Team
				opponent models.Team
				price    *float64
			}{
				{fixture.HomeTeam, fixture.AwayTeam, fixture.Odds.HomeWin},
				{fixture.AwayTeam, fixture.HomeTeam, fixture.Odds.AwayWin},
			}

			for _, side := range sides {
				window, err := cache.matches(ctx, side.team.ID)
				if err != nil {
					result.Errors = append(result.Errors, FetchError{
						Competition: comp.Code,
						Err:         fmt.Errorf("team %d (%s): %w", side.team.ID, side.team.Name, err),
					})
				}

				if EvaluateStreak(side.team.ID, window, winPred) {
					if side.price != nil && opts.Band.Contains(*side.price) {
						flagged := models.FlaggedResult{
							Team:        side.team.Name,
							Opponent:    side.opponent.Name,
							Price:       *side.price,
							Competition: comp.Name,
						}
						result.Flagged = append(result.Flagged, flagged)
						e.sendProgress(progress, flaggedUpdate(i+1, len(selected), flagged))
					}
				}

				if EvaluateStreak(side.team.ID, window, goalsPred) {
					highScoring[models.HighScoringTeam{
						Team:        side.team.Name,
						Competition: comp.Name,
					}] = struct{}{}
				}
			}
		}
	}

	result.HighScoring = make([]models.HighScoringTeam, 0, len(highScoring))
	for entry := range highScoring {
		result.HighScoring = append(result.HighScoring, entry)
	}
	sort.Slice(result.HighScoring, func(i, j int) bool {
		a, b := result.HighScoring[i], result.HighScoring[j]
		if a.Competition != b.Competition {
			return a.Competition < b.Competition
		}
		return a.Team < b.Team
	})

	result.TeamsEvaluated = cache.size()
	e.sendProgress(progress, scanCompleteUpdate(len(result.Flagged), len(result.HighScoring)))

	return result, nil
}
