package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/shared"
)

type mockCatalog struct {
	competitions    []models.Competition
	competitionsErr error
	fixtures        map[string][]models.Fixture
	fixturesErr     map[string]error
	matches         map[int64][]models.Match
	matchesErr      map[int64]error
	teamFetches     map[int64]int
}

func (m *mockCatalog) Competitions(ctx context.Context) ([]models.Competition, error) {
	if m.competitionsErr != nil {
		return nil, m.competitionsErr
	}
	return m.competitions, nil
}

func (m *mockCatalog) ScheduledFixtures(ctx context.Context, code string) ([]models.Fixture, error) {
	if err, ok := m.fixturesErr[code]; ok {
		return nil, err
	}
	return m.fixtures[code], nil
}

func (m *mockCatalog) TeamMatches(ctx context.Context, teamID int64, limit int) ([]models.Match, error) {
	if m.teamFetches == nil {
		m.teamFetches = make(map[int64]int)
	}
	m.teamFetches[teamID]++
	if err, ok := m.matchesErr[teamID]; ok {
		return nil, err
	}
	return m.matches[teamID], nil
}

func (m *mockCatalog) CheckToken(ctx context.Context) (string, error) {
	return "mock", nil
}

func (m *mockCatalog) Name() string { return "mock" }

func price(v float64) *float64 { return &v }

func TestOddsBand(t *testing.T) {
	band := OddsBand{Low: 1.10, High: 1.50}

	t.Run("both bounds are inclusive", func(t *testing.T) {
		if !band.Contains(1.10) {
			t.Error("Expected lower bound to be inside the band")
		}
		if !band.Contains(1.50) {
			t.Error("Expected upper bound to be inside the band")
		}
	})

	t.Run("prices outside the band are rejected", func(t *testing.T) {
		if band.Contains(1.09) {
			t.Error("Expected price below the band to be rejected")
		}
		if band.Contains(1.51) {
			t.Error("Expected price above the band to be rejected")
		}
	})
}

func TestSelectCompetitions(t *testing.T) {
	europe := models.Area{ID: 2077, Name: "Europe"}
	england := models.Area{ID: 2072, Name: "England"}

	catalog := []models.Competition{
		{Code: "PL", Name: "Premier League", Area: europe, Type: "LEAGUE"},
		{Code: "FAC", Name: "FA Cup", Area: europe, Type: "CUP"},
		{Code: "BL1", Name: "Bundesliga", Area: europe, Type: "LEAGUE"},
		{Code: "ELC", Name: "Championship", Area: england, Type: "LEAGUE"},
		{Code: "SA", Name: "Serie A", Area: europe, Type: "LEAGUE"},
		{Code: "DFB", Name: "DFB Pokal", Area: europe, Type: "CUP"},
		{Code: "PD", Name: "La Liga", Area: europe, Type: "LEAGUE"},
		{Code: "FL1", Name: "Ligue 1", Area: england, Type: "LEAGUE"},
		{Code: "CL", Name: "Champions League", Area: europe, Type: "CUP"},
		{Code: "EL1", Name: "League One", Area: england, Type: "LEAGUE"},
	}

	t.Run("filters by area and format preserving order", func(t *testing.T) {
		selected := SelectCompetitions(catalog, 2077, "LEAGUE")
		want := []string{"PL", "BL1", "SA", "PD"}
		if len(selected) != len(want) {
			t.Fatalf("Expected %d competitions, got %d", len(want), len(selected))
		}
		for i, code := range want {
			if selected[i].Code != code {
				t.Errorf("Expected %s at position %d, got %s", code, i, selected[i].Code)
			}
		}
	})

	t.Run("empty format matches every type", func(t *testing.T) {
		selected := SelectCompetitions(catalog, 2077, "")
		if len(selected) != 7 {
			t.Errorf("Expected 7 competitions, got %d", len(selected))
		}
	})

	t.Run("unknown area yields an empty selection", func(t *testing.T) {
		if got := SelectCompetitions(catalog, 9999, "LEAGUE"); len(got) != 0 {
			t.Errorf("Expected empty selection, got %d", len(got))
		}
	})

	t.Run("nil catalog yields an empty selection", func(t *testing.T) {
		if got := SelectCompetitions(nil, 2077, "LEAGUE"); got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil selection, got %v", got)
		}
	})
}

// plScenario builds a single-competition catalog where team A (id 1) is on a
// five-match win streak and quoted at 1.40 at home against team B (id 2).
func plScenario() *mockCatalog {
	teamA := models.Team{ID: 1, Name: "A"}
	teamB := models.Team{ID: 2, Name: "B"}

	streak := repeatMatch(wonBy(1, 2, 0), 5)
	mixed := []models.Match{
		wonBy(2, 1, 0), lostBy(2, 0, 2), wonBy(2, 3, 1), wonBy(2, 2, 0), drawnBy(2, 1, 1),
	}

	return &mockCatalog{
		competitions: []models.Competition{
			{Code: "PL", Name: "Premier League", Area: models.Area{ID: 2077, Name: "Europe"}, Type: "LEAGUE"},
		},
		fixtures: map[string][]models.Fixture{
			"PL": {
				{
					ID:       10,
					HomeTeam: teamA,
					AwayTeam: teamB,
					Odds:     models.Odds{HomeWin: price(1.40), Draw: price(4.80), AwayWin: price(7.25)},
				},
			},
		},
		matches: map[int64][]models.Match{1: streak, 2: mixed},
	}
}

func TestScan(t *testing.T) {
	ctx := context.Background()
	opts := ScanOpts{AreaID: 2077, Format: "LEAGUE", Band: OddsBand{Low: 0, High: 1.50}}

	t.Run("flags a streaking team quoted inside the band", func(t *testing.T) {
		catalog := plScenario()
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}

		if len(result.Flagged) != 1 {
			t.Fatalf("Expected 1 flagged result, got %d", len(result.Flagged))
		}

		flagged := result.Flagged[0]
		if flagged.Team != "A" || flagged.Opponent != "B" {
			t.Errorf("Expected A vs B, got %s vs %s", flagged.Team, flagged.Opponent)
		}
		if flagged.Price != 1.40 {
			t.Errorf("Expected price 1.40, got %v", flagged.Price)
		}
		if flagged.Competition != "Premier League" {
			t.Errorf("Expected Premier League, got %s", flagged.Competition)
		}

		if result.Competitions != 1 || result.Fixtures != 1 {
			t.Errorf("Expected 1 competition and 1 fixture, got %d and %d", result.Competitions, result.Fixtures)
		}
		if result.TeamsEvaluated != 2 {
			t.Errorf("Expected 2 teams evaluated, got %d", result.TeamsEvaluated)
		}
		if len(result.Errors) != 0 {
			t.Errorf("Expected no fetch errors, got %v", result.Errors)
		}
	})

	t.Run("price on the band boundary is flagged", func(t *testing.T) {
		catalog := plScenario()
		catalog.fixtures["PL"][0].Odds.HomeWin = price(1.50)
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(result.Flagged) != 1 {
			t.Errorf("Expected boundary price to be flagged, got %d results", len(result.Flagged))
		}
	})

	t.Run("missing odds yield no flagged results", func(t *testing.T) {
		catalog := plScenario()
		catalog.fixtures["PL"][0].Odds = models.Odds{}
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(result.Flagged) != 0 {
			t.Errorf("Expected no flagged results without a quoted price, got %d", len(result.Flagged))
		}
	})

	t.Run("price outside the band is not flagged", func(t *testing.T) {
		catalog := plScenario()
		catalog.fixtures["PL"][0].Odds.HomeWin = price(1.51)
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(result.Flagged) != 0 {
			t.Errorf("Expected no flagged results above the band, got %d", len(result.Flagged))
		}
	})

	t.Run("each team is fetched at most once per scan", func(t *testing.T) {
		catalog := plScenario()
		teamC := models.Team{ID: 3, Name: "C"}
		catalog.fixtures["PL"] = append(catalog.fixtures["PL"], models.Fixture{
			ID:       11,
			HomeTeam: catalog.fixtures["PL"][0].HomeTeam,
			AwayTeam: teamC,
			Odds:     models.Odds{HomeWin: price(1.20)},
		})
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}

		for teamID, count := range catalog.teamFetches {
			if count != 1 {
				t.Errorf("Expected team %d to be fetched once, got %d", teamID, count)
			}
		}
		if result.TeamsEvaluated != 3 {
			t.Errorf("Expected 3 teams evaluated, got %d", result.TeamsEvaluated)
		}
		// Team A qualifies in both its fixtures
		if len(result.Flagged) != 2 {
			t.Errorf("Expected 2 flagged results, got %d", len(result.Flagged))
		}
	})

	t.Run("failed team fetches are cached and retried never", func(t *testing.T) {
		catalog := plScenario()
		catalog.matchesErr = map[int64]error{1: errors.New("upstream down")}
		teamC := models.Team{ID: 3, Name: "C"}
		catalog.fixtures["PL"] = append(catalog.fixtures["PL"], models.Fixture{
			ID:       11,
			HomeTeam: models.Team{ID: 1, Name: "A"},
			AwayTeam: teamC,
			Odds:     models.Odds{HomeWin: price(1.20)},
		})
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if catalog.teamFetches[1] != 1 {
			t.Errorf("Expected one fetch attempt for team 1, got %d", catalog.teamFetches[1])
		}
		if len(result.Flagged) != 0 {
			t.Errorf("Expected no flagged results when history is unavailable, got %d", len(result.Flagged))
		}
		// Team 1 appears in both fixtures but its failure is recorded once
		if len(result.Errors) != 1 {
			t.Fatalf("Expected one recorded fetch error, got %d", len(result.Errors))
		}
		if result.Errors[0].Competition != "PL" {
			t.Errorf("Expected the error attributed to PL, got %q", result.Errors[0].Competition)
		}
	})

	t.Run("team fetch failures are recorded per team", func(t *testing.T) {
		catalog := plScenario()
		catalog.matchesErr = map[int64]error{
			1: errors.New("upstream down"),
			2: errors.New("upstream down"),
		}
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(result.Flagged) != 0 {
			t.Errorf("Expected no flagged results, got %d", len(result.Flagged))
		}
		if len(result.Errors) != 2 {
			t.Fatalf("Expected both team failures recorded, got %d", len(result.Errors))
		}
		for _, fetchErr := range result.Errors {
			if fetchErr.Competition != "PL" {
				t.Errorf("Expected the error attributed to PL, got %q", fetchErr.Competition)
			}
		}
	})

	t.Run("high-scoring teams are deduplicated and sorted", func(t *testing.T) {
		catalog := plScenario()
		// Team A appears in two fixtures; high-scoring form either way
		catalog.matches[1] = repeatMatch(wonBy(1, 3, 1), 5)
		catalog.fixtures["PL"] = append(catalog.fixtures["PL"], models.Fixture{
			ID:       11,
			HomeTeam: models.Team{ID: 1, Name: "A"},
			AwayTeam: models.Team{ID: 3, Name: "C"},
		})
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}

		if len(result.HighScoring) != 1 {
			t.Fatalf("Expected a single deduplicated entry, got %d", len(result.HighScoring))
		}
		entry := result.HighScoring[0]
		if entry.Team != "A" || entry.Competition != "Premier League" {
			t.Errorf("Unexpected high-scoring entry: %+v", entry)
		}
	})

	t.Run("catalog failure is fail-soft", func(t *testing.T) {
		catalog := &mockCatalog{competitionsErr: errors.New("upstream down")}
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Expected fail-soft scan, got error: %v", err)
		}
		if len(result.Errors) != 1 {
			t.Fatalf("Expected 1 recorded fetch error, got %d", len(result.Errors))
		}
		if result.Errors[0].Competition != "" {
			t.Errorf("Expected catalog-level error, got competition %q", result.Errors[0].Competition)
		}
		if result.Competitions != 0 || len(result.Flagged) != 0 {
			t.Errorf("Expected empty result, got %+v", result)
		}
	})

	t.Run("fixture failure skips the competition and records the error", func(t *testing.T) {
		catalog := plScenario()
		catalog.competitions = append(catalog.competitions, models.Competition{
			Code: "BL1", Name: "Bundesliga", Area: models.Area{ID: 2077}, Type: "LEAGUE",
		})
		catalog.fixturesErr = map[string]error{"BL1": errors.New("timeout")}
		engine := NewEngine(catalog, 0)

		result, err := engine.Scan(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(result.Errors) != 1 || result.Errors[0].Competition != "BL1" {
			t.Errorf("Expected a recorded error for BL1, got %v", result.Errors)
		}
		if len(result.Flagged) != 1 {
			t.Errorf("Expected the healthy competition to still be scanned, got %d flagged", len(result.Flagged))
		}
	})

	t.Run("nil catalog returns service unavailable", func(t *testing.T) {
		engine := NewEngine(nil, 0)
		if _, err := engine.Scan(ctx, nil, opts); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("cancelled context stops the scan", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewEngine(plScenario(), 0)
		if _, err := engine.Scan(cancelled, nil, opts); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})

	t.Run("progress updates are emitted without blocking", func(t *testing.T) {
		progress := make(chan ProgressUpdate, 50)
		engine := NewEngine(plScenario(), 0)

		if _, err := engine.Scan(ctx, progress, opts); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		close(progress)

		phases := make(map[Phase]int)
		for update := range progress {
			phases[update.Phase]++
		}
		for _, phase := range []Phase{FetchCatalog, ScanCompetition, CheckFixtures, FlagResult, ScanComplete} {
			if phases[phase] == 0 {
				t.Errorf("Expected at least one %v update", phase)
			}
		}
	})

	t.Run("full progress channel never blocks the scan", func(t *testing.T) {
		progress := make(chan ProgressUpdate) // unbuffered, never drained
		engine := NewEngine(plScenario(), 0)

		result, err := engine.Scan(ctx, progress, opts)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(result.Flagged) != 1 {
			t.Errorf("Expected the scan to complete with 1 flagged result, got %d", len(result.Flagged))
		}
	})
}
