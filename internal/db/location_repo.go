package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"bwip/internal/types"
)

// LocationRepository provides read access to the locations table. Location
// rows are managed by the surrounding portal; the poster pipeline never
// writes them.
type LocationRepository struct {
	db DBTX
}

// NewLocationRepository creates a LocationRepository backed by the given
// database connection (pool or transaction).
func NewLocationRepository(db DBTX) *LocationRepository {
	return &LocationRepository{db: db}
}

// locationColumns is the standard column set for location queries. Used
// consistently across all query methods to avoid column drift.
const locationColumns = `l.id, l.authority_id, l.beaches_id, l.name_en, l.name_ga,
	l.classification, l.latitude, l.longitude, l.description_en, l.description_ga,
	l.facilities, l.is_active, l.created_at, l.updated_at`

// scanLocation scans a single location row. The columns must match the order
// defined in locationColumns.
func scanLocation(row pgx.Row) (*types.Location, error) {
	var loc types.Location
	err := row.Scan(
		&loc.ID,
		&loc.AuthorityID,
		&loc.BeachesID,
		&loc.NameEN,
		&loc.NameGA,
		&loc.Classification,
		&loc.Latitude,
		&loc.Longitude,
		&loc.DescriptionEN,
		&loc.DescriptionGA,
		&loc.Facilities,
		&loc.IsActive,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetByID retrieves a location by its ID.
// Returns ErrCodeNotFoundLocation if no such location exists.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*types.Location, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+locationColumns+`
		 FROM locations l
		 WHERE l.id = $1`,
		id,
	)

	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeNotFoundLocation, "location not found", nil)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve location", err)
	}
	return loc, nil
}

// ListByAuthority returns the active locations for one Local Authority,
// ordered by English name.
func (r *LocationRepository) ListByAuthority(ctx context.Context, authorityID string) ([]types.Location, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+locationColumns+`
		 FROM locations l
		 WHERE l.authority_id = $1 AND l.is_active
		 ORDER BY l.name_en`,
		authorityID,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list locations", err)
	}
	defer rows.Close()

	var locations []types.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan location row", err)
		}
		locations = append(locations, *loc)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to iterate location rows", err)
	}
	return locations, nil
}
