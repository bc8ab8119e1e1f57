// package services defines interface Catalog for the upstream football-data API
package services

import (
	"context"

	"github.com/desertthunder/scout/internal/models"
)

// Catalog defines the interface for the upstream football data provider
// consumed by the fixture scanner.
type Catalog interface {
	// Competitions retrieves the full competition catalog.
	Competitions(ctx context.Context) ([]models.Competition, error)

	// ScheduledFixtures retrieves the scheduled (not yet played) fixtures for a competition code.
	ScheduledFixtures(ctx context.Context, code string) ([]models.Fixture, error)

	// TeamMatches retrieves a team's most recent finished matches, most-recent-first,
	// at most limit entries.
	TeamMatches(ctx context.Context, teamID int64, limit int) ([]models.Match, error)

	// CheckToken verifies the configured API token against a known endpoint.
	// Returns a human-readable confirmation (the competition name fetched) on success.
	CheckToken(ctx context.Context) (string, error)

	// Name returns the name of the provider (e.g., "football-data.org")
	Name() string
}
