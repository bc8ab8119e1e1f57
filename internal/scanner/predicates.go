package scanner

import (
	"fmt"

	"github.com/desertthunder/scout/internal/models"
)

// Default predicate parameters, matching the windows the scan was designed around.
const (
	DefaultWinWindow      = 5
	DefaultGoalsWindow    = 4
	DefaultGoalsThreshold = 3
)

// Predicate is a boolean check over a fixed-size window of one team's most
// recent finished matches (most-recent-first).
type Predicate struct {
	Name   string
	Window int
	Check  func(teamID int64, m models.Match) bool
}

// WinStreak returns a predicate satisfied when the team was on the winning
// side of every one of its last window matches. A draw or loss anywhere in
// the window fails the predicate.
func WinStreak(window int) Predicate {
	if window <= 0 {
		window = DefaultWinWindow
	}
	return Predicate{
		Name:   fmt.Sprintf("win-streak(%d)", window),
		Window: window,
		Check: func(teamID int64, m models.Match) bool {
			return m.WonBy(teamID)
		},
	}
}

// HighScoring returns a predicate satisfied when every one of the team's last
// window matches finished with at least minGoals combined goals. Absent goal
// counts read as zero, so incomplete data fails the predicate rather than crashing.
func HighScoring(window, minGoals int) Predicate {
	if window <= 0 {
		window = DefaultGoalsWindow
	}
	if minGoals <= 0 {
		minGoals = DefaultGoalsThreshold
	}
	return Predicate{
		Name:   fmt.Sprintf("high-scoring(%d,%d)", window, minGoals),
		Window: window,
		Check: func(teamID int64, m models.Match) bool {
			return m.TotalGoals() >= minGoals
		},
	}
}

// EvaluateStreak reports whether the team satisfies the predicate over its
// recent-match window. Fewer than Window matches is never a pass. Pure and
// deterministic for a given window, which is what makes per-scan caching of
// windows correctness-preserving.
func EvaluateStreak(teamID int64, matches []models.Match, pred Predicate) bool {
	if pred.Window <= 0 || pred.Check == nil {
		return false
	}
	if len(matches) < pred.Window {
		return false
	}
	for _, m := range matches[:pred.Window] {
		if !pred.Check(teamID, m) {
			return false
		}
	}
	return true
}
