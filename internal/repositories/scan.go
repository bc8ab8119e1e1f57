package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/shared"
)

// ScanRepository implements models.Repository[*models.PersistedScan] for scan history.
//
// A scan row stores the parameters and result counts of one completed run;
// its flagged results live in a child table keyed by scan id, ordered by a
// position column so discovery order survives the round trip.
type ScanRepository struct {
	db *sql.DB
}

// NewScanRepository creates a new ScanRepository with the given database connection
func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Create inserts a new [models.PersistedScan] into the database with generated ID and sequence
func (r *ScanRepository) Create(scan *models.PersistedScan) error {
	sequence, err := NextSequence(r.db, "scans")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	scan.SetID(id)
	scan.SetSequence(sequence)

	if err := scan.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO scans (id, sequence, area_id, format, odds_low, odds_high, competitions, fixtures, flagged_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		scan.AreaID(),
		scan.Format(),
		scan.OddsLow(),
		scan.OddsHigh(),
		scan.Competitions(),
		scan.Fixtures(),
		scan.FlaggedCount(),
		scan.CreatedAt(),
		scan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	return nil
}

// SaveFlagged stores a scan's flagged results, preserving discovery order
// through the position column.
func (r *ScanRepository) SaveFlagged(scanID string, flagged []models.FlaggedResult) error {
	if scanID == "" {
		return fmt.Errorf("scan ID must not be empty")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO flagged_results (id, scan_id, position, team, opponent, price, competition, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	for i, f := range flagged {
		if _, err := tx.Exec(query, shared.GenerateID(), scanID, i, f.Team, f.Opponent, f.Price, f.Competition, now); err != nil {
			return fmt.Errorf("failed to insert flagged result: %w", err)
		}
	}

	return tx.Commit()
}

// Flagged retrieves a scan's flagged results in discovery order.
func (r *ScanRepository) Flagged(scanID string) ([]models.FlaggedResult, error) {
	query := `
		SELECT team, opponent, price, competition
		FROM flagged_results
		WHERE scan_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, scanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query flagged results: %w", err)
	}
	defer rows.Close()

	var flagged []models.FlaggedResult
	for rows.Next() {
		var f models.FlaggedResult
		if err := rows.Scan(&f.Team, &f.Opponent, &f.Price, &f.Competition); err != nil {
			return nil, fmt.Errorf("failed to scan flagged result: %w", err)
		}
		flagged = append(flagged, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flagged results: %w", err)
	}

	return flagged, nil
}

// Get retrieves a scan by ID, excluding soft-deleted scans
func (r *ScanRepository) Get(id string) (*models.PersistedScan, error) {
	query := `
		SELECT id, sequence, area_id, format, odds_low, odds_high, competitions, fixtures, flagged_count, created_at, updated_at, deleted_at
		FROM scans
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing scan in the database
func (r *ScanRepository) Update(scan *models.PersistedScan) error {
	if err := scan.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	scan.SetUpdatedAt(now)

	query := `
		UPDATE scans
		SET area_id = ?, format = ?, odds_low = ?, odds_high = ?, competitions = ?, fixtures = ?, flagged_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		scan.AreaID(),
		scan.Format(),
		scan.OddsLow(),
		scan.OddsHigh(),
		scan.Competitions(),
		scan.Fixtures(),
		scan.FlaggedCount(),
		now,
		scan.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update scan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrScanNotFound, scan.ID())
	}

	return nil
}

// Delete soft-deletes a scan by ID
func (r *ScanRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE scans
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete scan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrScanNotFound, id)
	}

	return nil
}

// List retrieves scans most-recent-first. Criteria keys: "area_id", "format", "limit".
func (r *ScanRepository) List(criteria map[string]any) ([]*models.PersistedScan, error) {
	query := `
		SELECT id, sequence, area_id, format, odds_low, odds_high, competitions, fixtures, flagged_count, created_at, updated_at, deleted_at
		FROM scans
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if areaID, ok := criteria["area_id"]; ok {
		query += " AND area_id = ?"
		args = append(args, areaID)
	}
	if format, ok := criteria["format"]; ok {
		query += " AND format = ?"
		args = append(args, format)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"]; ok {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var scans []*models.PersistedScan
	for rows.Next() {
		scan, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scans: %w", err)
	}

	return scans, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ScanRepository) scanOne(row *sql.Row) (*models.PersistedScan, error) {
	scan, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrScanNotFound
	}
	return scan, err
}

func (r *ScanRepository) scanRow(row rowScanner) (*models.PersistedScan, error) {
	var (
		id, format            string
		sequence              int
		areaID                int64
		oddsLow, oddsHigh     float64
		comps, fixes, flagged int
		createdAt, updatedAt  time.Time
		deletedAt             sql.NullTime
	)

	err := row.Scan(&id, &sequence, &areaID, &format, &oddsLow, &oddsHigh, &comps, &fixes, &flagged, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestorePersistedScan(id, sequence, areaID, format, oddsLow, oddsHigh, comps, fixes, flagged, createdAt, updatedAt, deleted), nil
}
