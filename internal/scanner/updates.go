package scanner

import (
	"fmt"

	"github.com/desertthunder/scout/internal/models"
)

// ProgressUpdate represents a progress event during a scan.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	ScanCompetition
	CheckFixtures
	FlagResult
	ScanComplete
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case ScanCompetition:
		return "scan_competition"
	case CheckFixtures:
		return "check_fixtures"
	case FlagResult:
		return "flag_result"
	case ScanComplete:
		return "scan_complete"
	default:
		return ""
	}
}

func fetchCatalogUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: "Fetching competition catalog...",
	}
}

func selectedCompetitionsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Selected %d competitions", count),
	}
}

func scanCompetitionUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanCompetition,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Scanning %s...", step, total, name),
	}
}

func checkFixturesUpdate(step, total, fixtures int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckFixtures,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %d scheduled fixtures", step, total, name, fixtures),
	}
}

func flaggedUpdate(step, total int, flagged models.FlaggedResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FlagResult,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✓ %s vs %s @ %.2f (%s)", flagged.Team, flagged.Opponent, flagged.Price, flagged.Competition),
		Data:    flagged,
	}
}

func scanCompleteUpdate(flagged, highScoring int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanComplete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Scan complete: %d flagged, %d high-scoring", flagged, highScoring),
	}
}
