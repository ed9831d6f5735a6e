package db

import (
	"context"

	"bwip/internal/types"
)

// AuditRepository appends rows to the audit_events table. Audit rows are
// write-once; reading them back belongs to the compliance reporting surface,
// not the poster pipeline.
type AuditRepository struct {
	db DBTX
}

// NewAuditRepository creates an AuditRepository backed by the given database
// connection (pool or transaction).
func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record inserts one audit event. The caller decides whether a failure here
// is fatal; for poster generation it is logged and absorbed.
func (r *AuditRepository) Record(ctx context.Context, ev *types.AuditEvent) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_events (id, actor_id, action, location_id, poster_id, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.ID,
		ev.ActorID,
		ev.Action,
		ev.LocationID,
		ev.PosterID,
		ev.Details,
		ev.CreatedAt,
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to record audit event", err)
	}
	return nil
}
