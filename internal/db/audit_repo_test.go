package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bwip/internal/types"
)

// Note: mockDBTX is defined in location_repo_test.go and reused here.

func testAuditEvent() *types.AuditEvent {
	rec := types.Template1A
	return &types.AuditEvent{
		ID:         "audit-1",
		ActorID:    "user-1",
		Action:     types.AuditPosterGenerated,
		LocationID: "loc-1",
		PosterID:   "poster-1",
		Details: types.AuditDetails{
			Template:            types.Template1B,
			Size:                types.SizeA3,
			Language:            types.LanguageBilingual,
			RecommendedTemplate: &rec,
			OverrideReason:      "Precautionary restriction",
		},
		CreatedAt: time.Date(2024, 7, 16, 14, 30, 5, 0, time.UTC),
	}
}

func TestAuditRepository_Record_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := repo.Record(ctx, testAuditEvent())
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestAuditRepository_Record_DBError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("audit table unavailable"))

	err := repo.Record(ctx, testAuditEvent())
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)

	db.AssertExpectations(t)
}
