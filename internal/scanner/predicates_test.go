package scanner

import (
	"testing"

	"github.com/desertthunder/scout/internal/models"
)

func goals(n int) *int { return &n }

// wonBy builds a finished match the given team won at home.
func wonBy(teamID int64, home, away int) models.Match {
	return models.Match{
		HomeTeam: models.Team{ID: teamID},
		AwayTeam: models.Team{ID: teamID + 9000},
		Score: models.Score{
			Winner:   models.WinnerHome,
			FullTime: models.FullTime{Home: goals(home), Away: goals(away)},
		},
	}
}

// lostBy builds a finished match the given team lost at home.
func lostBy(teamID int64, home, away int) models.Match {
	return models.Match{
		HomeTeam: models.Team{ID: teamID},
		AwayTeam: models.Team{ID: teamID + 9000},
		Score: models.Score{
			Winner:   models.WinnerAway,
			FullTime: models.FullTime{Home: goals(home), Away: goals(away)},
		},
	}
}

// drawnBy builds a finished match the given team drew at home.
func drawnBy(teamID int64, home, away int) models.Match {
	return models.Match{
		HomeTeam: models.Team{ID: teamID},
		AwayTeam: models.Team{ID: teamID + 9000},
		Score: models.Score{
			Winner:   models.WinnerDraw,
			FullTime: models.FullTime{Home: goals(home), Away: goals(away)},
		},
	}
}

func repeatMatch(m models.Match, n int) []models.Match {
	matches := make([]models.Match, n)
	for i := range matches {
		matches[i] = m
	}
	return matches
}

func TestEvaluateStreak(t *testing.T) {
	const teamID = int64(101)

	t.Run("five straight wins satisfies the win streak", func(t *testing.T) {
		matches := repeatMatch(wonBy(teamID, 2, 0), 5)
		if !EvaluateStreak(teamID, matches, WinStreak(5)) {
			t.Error("Expected win streak to hold")
		}
	})

	t.Run("insufficient history is not a streak", func(t *testing.T) {
		matches := repeatMatch(wonBy(teamID, 2, 0), 4)
		if EvaluateStreak(teamID, matches, WinStreak(5)) {
			t.Error("Expected four matches to fail a five-match window")
		}
	})

	t.Run("empty history is not a streak", func(t *testing.T) {
		if EvaluateStreak(teamID, nil, WinStreak(5)) {
			t.Error("Expected no matches to fail the predicate")
		}
	})

	t.Run("a loss anywhere in the window fails", func(t *testing.T) {
		matches := repeatMatch(wonBy(teamID, 2, 0), 5)
		matches[2] = lostBy(teamID, 0, 1)
		if EvaluateStreak(teamID, matches, WinStreak(5)) {
			t.Error("Expected a loss inside the window to fail the streak")
		}
	})

	t.Run("a draw anywhere in the window fails", func(t *testing.T) {
		matches := repeatMatch(wonBy(teamID, 2, 0), 5)
		matches[4] = drawnBy(teamID, 1, 1)
		if EvaluateStreak(teamID, matches, WinStreak(5)) {
			t.Error("Expected a draw inside the window to fail the streak")
		}
	})

	t.Run("only the window prefix is evaluated", func(t *testing.T) {
		matches := append(repeatMatch(wonBy(teamID, 2, 0), 5), lostBy(teamID, 0, 3))
		if !EvaluateStreak(teamID, matches, WinStreak(5)) {
			t.Error("Expected a loss outside the window to be ignored")
		}
	})

	t.Run("zero window never passes", func(t *testing.T) {
		pred := Predicate{Window: 0, Check: func(int64, models.Match) bool { return true }}
		if EvaluateStreak(teamID, repeatMatch(wonBy(teamID, 1, 0), 5), pred) {
			t.Error("Expected zero window to fail")
		}
	})

	t.Run("nil check never passes", func(t *testing.T) {
		pred := Predicate{Window: 5}
		if EvaluateStreak(teamID, repeatMatch(wonBy(teamID, 1, 0), 5), pred) {
			t.Error("Expected nil check to fail")
		}
	})
}

func TestWinStreak(t *testing.T) {
	t.Run("non-positive window falls back to the default", func(t *testing.T) {
		if got := WinStreak(0).Window; got != DefaultWinWindow {
			t.Errorf("Expected window %d, got %d", DefaultWinWindow, got)
		}
		if got := WinStreak(-3).Window; got != DefaultWinWindow {
			t.Errorf("Expected window %d, got %d", DefaultWinWindow, got)
		}
	})

	t.Run("only the evaluated team's wins count", func(t *testing.T) {
		const teamID = int64(101)
		matches := repeatMatch(wonBy(teamID, 2, 0), 5)
		if EvaluateStreak(555, matches, WinStreak(5)) {
			t.Error("Expected another team's wins not to count")
		}
	})
}

func TestHighScoring(t *testing.T) {
	const teamID = int64(101)

	t.Run("combined goals at the threshold pass", func(t *testing.T) {
		matches := repeatMatch(wonBy(teamID, 2, 1), 4)
		if !EvaluateStreak(teamID, matches, HighScoring(4, 3)) {
			t.Error("Expected exactly three combined goals to pass")
		}
	})

	t.Run("combined goals below the threshold fail", func(t *testing.T) {
		matches := repeatMatch(wonBy(teamID, 2, 1), 4)
		matches[1] = drawnBy(teamID, 1, 1)
		if EvaluateStreak(teamID, matches, HighScoring(4, 3)) {
			t.Error("Expected a two-goal match inside the window to fail")
		}
	})

	t.Run("losses still count toward goals", func(t *testing.T) {
		matches := repeatMatch(lostBy(teamID, 1, 3), 4)
		if !EvaluateStreak(teamID, matches, HighScoring(4, 3)) {
			t.Error("Expected the predicate to ignore match outcomes")
		}
	})

	t.Run("absent goal counts read as zero", func(t *testing.T) {
		matches := repeatMatch(models.Match{
			HomeTeam: models.Team{ID: teamID},
			Score:    models.Score{Winner: models.WinnerHome},
		}, 4)
		if EvaluateStreak(teamID, matches, HighScoring(4, 3)) {
			t.Error("Expected missing full-time counts to fail the threshold")
		}
	})

	t.Run("non-positive parameters fall back to defaults", func(t *testing.T) {
		pred := HighScoring(0, 0)
		if pred.Window != DefaultGoalsWindow {
			t.Errorf("Expected window %d, got %d", DefaultGoalsWindow, pred.Window)
		}
	})
}
