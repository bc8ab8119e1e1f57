// package models defines the data model for the fixture scanning service
package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for all persistent models in the scout service.
// Implementations include PersistedScan.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Area represents the governing confederation or region a competition belongs to.
type Area struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Competition represents a competition from the upstream catalog.
// Immutable snapshot, fetched once per scan.
type Competition struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Area Area   `json:"area"`
	Type string `json:"type"` // "LEAGUE" or "CUP"
}

// Team represents a competing side referenced by matches and fixtures.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Winner indicator values used by the upstream API for finished matches.
const (
	WinnerHome = "HOME_TEAM"
	WinnerAway = "AWAY_TEAM"
	WinnerDraw = "DRAW"
)

// FullTime holds the final goal counts of a finished match.
// The upstream omits counts for some historical fixtures; nil reads as zero.
type FullTime struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Score represents the outcome of a finished match.
type Score struct {
	Winner   string   `json:"winner"`
	FullTime FullTime `json:"fullTime"`
}

// Match represents a finished match in a team's recent history.
type Match struct {
	HomeTeam Team  `json:"homeTeam"`
	AwayTeam Team  `json:"awayTeam"`
	Score    Score `json:"score"`
}

// TotalGoals returns home plus away full-time goals, reading absent counts as zero.
func (m Match) TotalGoals() int {
	total := 0
	if m.Score.FullTime.Home != nil {
		total += *m.Score.FullTime.Home
	}
	if m.Score.FullTime.Away != nil {
		total += *m.Score.FullTime.Away
	}
	return total
}

// WonBy reports whether the given team was on the winning side of this match.
func (m Match) WonBy(teamID int64) bool {
	switch m.Score.Winner {
	case WinnerHome:
		return m.HomeTeam.ID == teamID
	case WinnerAway:
		return m.AwayTeam.ID == teamID
	}
	return false
}

// Odds holds the quoted decimal prices for a scheduled fixture.
// Prices may be absent when the upstream carries no market for the fixture.
type Odds struct {
	HomeWin *float64 `json:"homeWin"`
	Draw    *float64 `json:"draw"`
	AwayWin *float64 `json:"awayWin"`
}

// Fixture represents a scheduled match within a competition.
type Fixture struct {
	ID       int64 `json:"id"`
	HomeTeam Team  `json:"homeTeam"`
	AwayTeam Team  `json:"awayTeam"`
	Odds     Odds  `json:"odds"`
}

// FlaggedResult is a projection of a fixture where one side qualifies:
// the favored team is on a win streak and its quoted price sits inside the
// configured odds band. Constructed and discarded within one scan.
type FlaggedResult struct {
	Team        string  `json:"team"`     // favored side
	Opponent    string  `json:"opponent"` // the other side
	Price       float64 `json:"price"`
	Competition string  `json:"competition"`
}

// HighScoringTeam records a side whose recent matches all cleared the
// combined-goals threshold, independent of any quoted price.
type HighScoringTeam struct {
	Team        string `json:"team"`
	Competition string `json:"competition"`
}

// PersistedScan is a database-backed record of one completed scan:
// its parameters and result counts, kept for later listing and export.
type PersistedScan struct {
	id           string
	sequence     int
	areaID       int64
	format       string
	oddsLow      float64
	oddsHigh     float64
	competitions int
	fixtures     int
	flaggedCount int
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewPersistedScan creates a PersistedScan from scan parameters and counts.
// The ID and sequence are assigned by the repository on Create.
func NewPersistedScan(areaID int64, format string, oddsLow, oddsHigh float64, competitions, fixtures, flaggedCount int) *PersistedScan {
	now := time.Now()
	return &PersistedScan{
		areaID:       areaID,
		format:       format,
		oddsLow:      oddsLow,
		oddsHigh:     oddsHigh,
		competitions: competitions,
		fixtures:     fixtures,
		flaggedCount: flaggedCount,
		createdAt:    now,
		updatedAt:    now,
	}
}

// RestorePersistedScan rebuilds a PersistedScan from stored column values.
func RestorePersistedScan(id string, sequence int, areaID int64, format string, oddsLow, oddsHigh float64, competitions, fixtures, flaggedCount int, createdAt, updatedAt time.Time, deletedAt *time.Time) *PersistedScan {
	return &PersistedScan{
		id:           id,
		sequence:     sequence,
		areaID:       areaID,
		format:       format,
		oddsLow:      oddsLow,
		oddsHigh:     oddsHigh,
		competitions: competitions,
		fixtures:     fixtures,
		flaggedCount: flaggedCount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		deletedAt:    deletedAt,
	}
}

func (s *PersistedScan) ID() string            { return s.id }
func (s *PersistedScan) Sequence() int         { return s.sequence }
func (s *PersistedScan) AreaID() int64         { return s.areaID }
func (s *PersistedScan) Format() string        { return s.format }
func (s *PersistedScan) OddsLow() float64      { return s.oddsLow }
func (s *PersistedScan) OddsHigh() float64     { return s.oddsHigh }
func (s *PersistedScan) Competitions() int     { return s.competitions }
func (s *PersistedScan) Fixtures() int         { return s.fixtures }
func (s *PersistedScan) FlaggedCount() int     { return s.flaggedCount }
func (s *PersistedScan) CreatedAt() time.Time  { return s.createdAt }
func (s *PersistedScan) UpdatedAt() time.Time  { return s.updatedAt }
func (s *PersistedScan) DeletedAt() *time.Time { return s.deletedAt }

func (s *PersistedScan) SetID(id string)           { s.id = id }
func (s *PersistedScan) SetSequence(seq int)       { s.sequence = seq }
func (s *PersistedScan) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *PersistedScan) SetDeletedAt(t *time.Time) { s.deletedAt = t }

// Validate checks that the scan record carries a usable odds band and counts.
func (s *PersistedScan) Validate() error {
	if s.id == "" {
		return fmt.Errorf("scan ID must not be empty")
	}
	if s.oddsHigh < s.oddsLow {
		return fmt.Errorf("odds band high (%.2f) below low (%.2f)", s.oddsHigh, s.oddsLow)
	}
	if s.flaggedCount < 0 || s.competitions < 0 || s.fixtures < 0 {
		return fmt.Errorf("negative scan counts")
	}
	return nil
}
