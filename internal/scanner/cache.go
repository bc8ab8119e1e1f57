package scanner

import (
	"context"

	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/services"
)

// teamCache memoizes recent-match windows for the duration of one scan.
//
// A team evaluated twice in one scan (e.g., appearing in two fixtures) must
// see the identical window both times, so the upstream is consulted at most
// once per team id. Failed fetches are cached as empty windows: retrying
// mid-scan could return a different window and break that invariant.
//
// The cache is constructed inside Scan and owned exclusively by that
// invocation. It carries no synchronization; do not share across scans.
type teamCache struct {
	catalog services.Catalog
	limit   int
	entries map[int64][]models.Match
	fetches int
}

func newTeamCache(catalog services.Catalog, limit int) *teamCache {
	return &teamCache{
		catalog: catalog,
		limit:   limit,
		entries: make(map[int64][]models.Match),
	}
}

// matches returns the team's recent-match window, fetching it on first access.
// A failed fetch is cached as an empty window and its error returned on the
// fetching call only; later hits for the same team return a nil error.
func (c *teamCache) matches(ctx context.Context, teamID int64) ([]models.Match, error) {
	if window, ok := c.entries[teamID]; ok {
		return window, nil
	}

	c.fetches++
	window, err := c.catalog.TeamMatches(ctx, teamID, c.limit)
	if err != nil {
		window = nil
	}
	c.entries[teamID] = window
	return window, err
}

// size returns the number of distinct teams resolved so far.
func (c *teamCache) size() int {
	return len(c.entries)
}
