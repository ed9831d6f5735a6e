package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bwip/internal/types"
)

// --- Mock DBTX ---

type mockDBTX struct {
	mock.Mock
}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDBTX) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if r := args.Get(0); r != nil {
		return r.(pgx.Rows), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// --- Mock Row ---

type mockRow struct {
	scanErr error
	scanFn  func(dest ...any) error
}

func (r *mockRow) Scan(dest ...any) error {
	if r.scanFn != nil {
		return r.scanFn(dest...)
	}
	return r.scanErr
}

// --- Mock Rows for Query ---

// mockRows implements pgx.Rows for testing Query results. Each row supplies
// its own scan function so tests control every destination type.
type mockRows struct {
	scans   []func(dest ...any) error
	idx     int
	closed  bool
	scanErr error
	errVal  error
}

func newMockRows(scans ...func(dest ...any) error) *mockRows {
	return &mockRows{scans: scans, idx: -1}
}

func (r *mockRows) Next() bool {
	if r.closed {
		return false
	}
	r.idx++
	return r.idx < len(r.scans)
}

func (r *mockRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	return r.scans[r.idx](dest...)
}

func (r *mockRows) Close()                                       { r.closed = true }
func (r *mockRows) Err() error                                   { return r.errVal }
func (r *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *mockRows) RawValues() [][]byte                          { return nil }
func (r *mockRows) Values() ([]any, error)                       { return nil, nil }
func (r *mockRows) Conn() *pgx.Conn                              { return nil }

// scanLocationRow fills the locationColumns destinations for one test row.
func scanLocationRow(id, name string) func(dest ...any) error {
	now := time.Date(2024, 7, 16, 12, 0, 0, 0, time.UTC)
	return func(dest ...any) error {
		*dest[0].(*string) = id                                            // id
		*dest[1].(*string) = "auth-1"                                      // authority_id
		*dest[2].(*string) = "IEWEBWC170_0000_0200"                        // beaches_id
		*dest[3].(*string) = name                                          // name_en
		*dest[4].(*string) = ""                                            // name_ga
		*dest[5].(*types.Classification) = types.ClassificationIdentified  // classification
		*dest[6].(*float64) = 53.36                                        // latitude
		*dest[7].(*float64) = -6.15                                        // longitude
		*dest[8].(*string) = ""                                            // description_en
		*dest[9].(*string) = ""                                            // description_ga
		_ = dest[10].(*types.Facilities).Scan([]byte(`{"toilets":true}`))  // facilities
		*dest[11].(*bool) = true                                           // is_active
		*dest[12].(*time.Time) = now                                       // created_at
		*dest[13].(*time.Time) = now                                       // updated_at
		return nil
	}
}

// --- LocationRepository Tests ---

func TestLocationRepository_GetByID_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewLocationRepository(db)
	ctx := context.Background()

	row := &mockRow{scanFn: scanLocationRow("loc-1", "Dollymount Strand")}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"loc-1"}).Return(row)

	loc, err := repo.GetByID(ctx, "loc-1")
	require.NoError(t, err)
	assert.Equal(t, "loc-1", loc.ID)
	assert.Equal(t, "Dollymount Strand", loc.NameEN)
	assert.Equal(t, types.ClassificationIdentified, loc.Classification)
	assert.True(t, loc.Facilities.Toilets)

	db.AssertExpectations(t)
}

func TestLocationRepository_GetByID_NotFound(t *testing.T) {
	db := new(mockDBTX)
	repo := NewLocationRepository(db)
	ctx := context.Background()

	row := &mockRow{scanErr: pgx.ErrNoRows}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"loc-missing"}).Return(row)

	_, err := repo.GetByID(ctx, "loc-missing")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeNotFoundLocation, appErr.Code)

	db.AssertExpectations(t)
}

func TestLocationRepository_GetByID_DBError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewLocationRepository(db)
	ctx := context.Background()

	row := &mockRow{scanErr: errors.New("connection refused")}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"loc-1"}).Return(row)

	_, err := repo.GetByID(ctx, "loc-1")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)

	db.AssertExpectations(t)
}

func TestLocationRepository_ListByAuthority_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewLocationRepository(db)
	ctx := context.Background()

	rows := newMockRows(
		scanLocationRow("loc-1", "Dollymount Strand"),
		scanLocationRow("loc-2", "Seapoint"),
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), []any{"auth-1"}).Return(rows, nil)

	locations, err := repo.ListByAuthority(ctx, "auth-1")
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "loc-1", locations[0].ID)
	assert.Equal(t, "Seapoint", locations[1].NameEN)

	db.AssertExpectations(t)
}

func TestLocationRepository_ListByAuthority_QueryError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewLocationRepository(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), []any{"auth-1"}).
		Return(nil, errors.New("db down"))

	_, err := repo.ListByAuthority(ctx, "auth-1")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)

	db.AssertExpectations(t)
}
