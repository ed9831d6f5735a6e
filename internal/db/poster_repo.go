package db

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/klauspost/compress/gzip"

	"bwip/internal/types"
)

// PosterRepository persists poster records and their PDF binaries. Posters
// are an append-only compliance record: Create is the only write, and there
// is no update or delete.
//
// The PDF binary is stored gzip-compressed alongside the row; vector-heavy
// poster PDFs compress well and stay inside row TOAST limits.
type PosterRepository struct {
	db DBTX
}

// NewPosterRepository creates a PosterRepository backed by the given
// database connection (pool or transaction).
func NewPosterRepository(db DBTX) *PosterRepository {
	return &PosterRepository{db: db}
}

// posterColumns is the standard column set for poster queries, excluding the
// PDF binary which is only fetched by GetPDF.
const posterColumns = `p.id, p.location_id, p.template_used, p.recommended_template,
	p.was_overridden, p.override_reason, p.custom_notification,
	p.size, p.orientation, p.language, p.snapshot,
	p.generated_by, p.generated_at`

// scanPoster scans a single poster row. The columns must match the order
// defined in posterColumns.
func scanPoster(row pgx.Row) (*types.Poster, error) {
	var p types.Poster
	err := row.Scan(
		&p.ID,
		&p.LocationID,
		&p.TemplateUsed,
		&p.RecommendedTemplate,
		&p.WasOverridden,
		&p.OverrideReason,
		&p.CustomNotification,
		&p.Size,
		&p.Orientation,
		&p.Language,
		&p.Snapshot,
		&p.GeneratedBy,
		&p.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the poster record together with its compressed PDF binary.
// The caller must set the ID and all immutable fields before calling.
func (r *PosterRepository) Create(ctx context.Context, p *types.Poster, pdfData []byte) error {
	compressed, err := compressPDF(pdfData)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to compress poster PDF", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO posters (id, location_id, template_used, recommended_template,
		 was_overridden, override_reason, custom_notification,
		 size, orientation, language, snapshot,
		 pdf_data, pdf_size, generated_by, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID,
		p.LocationID,
		p.TemplateUsed,
		p.RecommendedTemplate,
		p.WasOverridden,
		p.OverrideReason,
		p.CustomNotification,
		p.Size,
		p.Orientation,
		p.Language,
		p.Snapshot,
		compressed,
		len(pdfData),
		p.GeneratedBy,
		p.GeneratedAt,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to create poster", err)
	}
	return nil
}

// GetByID retrieves a poster record without its PDF binary.
// Returns ErrCodeNotFoundPoster if no such poster exists.
func (r *PosterRepository) GetByID(ctx context.Context, id string) (*types.Poster, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+posterColumns+`
		 FROM posters p
		 WHERE p.id = $1`,
		id,
	)

	p, err := scanPoster(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeNotFoundPoster, "poster not found", nil)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve poster", err)
	}
	return p, nil
}

// GetPDF retrieves and decompresses the PDF binary for a poster.
// Returns ErrCodeNotFoundPoster if no such poster exists.
func (r *PosterRepository) GetPDF(ctx context.Context, id string) ([]byte, error) {
	var compressed []byte
	err := r.db.QueryRow(ctx,
		`SELECT p.pdf_data FROM posters p WHERE p.id = $1`,
		id,
	).Scan(&compressed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeNotFoundPoster, "poster not found", nil)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve poster PDF", err)
	}

	data, err := decompressPDF(compressed)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to decompress poster PDF", err)
	}
	return data, nil
}

// ListByAuthority returns the poster history for an authority's locations,
// newest first.
func (r *PosterRepository) ListByAuthority(ctx context.Context, authorityID string) ([]types.Poster, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+posterColumns+`
		 FROM posters p
		 JOIN locations l ON l.id = p.location_id
		 WHERE l.authority_id = $1
		 ORDER BY p.generated_at DESC`,
		authorityID,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list posters", err)
	}
	return collectPosters(rows)
}

// ListByLocation returns the poster history for one location, newest first.
func (r *PosterRepository) ListByLocation(ctx context.Context, locationID string) ([]types.Poster, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+posterColumns+`
		 FROM posters p
		 WHERE p.location_id = $1
		 ORDER BY p.generated_at DESC`,
		locationID,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list posters", err)
	}
	return collectPosters(rows)
}

func collectPosters(rows pgx.Rows) ([]types.Poster, error) {
	defer rows.Close()

	var posters []types.Poster
	for rows.Next() {
		p, err := scanPoster(rows)
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan poster row", err)
		}
		posters = append(posters, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to iterate poster rows", err)
	}
	return posters, nil
}

func compressPDF(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressPDF(compressed []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
