package db

import (
	"bytes"
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

// Note: mockDBTX, mockRow, and mockRows are defined in location_repo_test.go
// and reused here.

func testPoster() *types.Poster {
	rec := types.Template1A
	return &types.Poster{
		ID:                  "poster-1",
		LocationID:          "loc-1",
		TemplateUsed:        types.Template1A,
		RecommendedTemplate: &rec,
		Size:                types.SizeA4,
		Orientation:         types.OrientationPortrait,
		Language:            types.LanguageEnglish,
		Snapshot: types.WaterQualitySummary{
			BeachID:   "IEWEBWC170_0000_0200",
			BeachName: "Dollymount Strand",
		},
		GeneratedBy: "user-1",
		GeneratedAt: time.Date(2024, 7, 16, 14, 30, 5, 0, time.UTC),
	}
}

// scanPosterRow fills the posterColumns destinations for one test row.
func scanPosterRow(id string) func(dest ...any) error {
	return func(dest ...any) error {
		rec := types.Template1A
		*dest[0].(*string) = id                                         // id
		*dest[1].(*string) = "loc-1"                                    // location_id
		*dest[2].(*types.TemplateCode) = types.Template1A               // template_used
		*dest[3].(**types.TemplateCode) = &rec                          // recommended_template
		*dest[4].(*bool) = false                                        // was_overridden
		*dest[5].(*string) = ""                                         // override_reason
		*dest[6].(*string) = ""                                         // custom_notification
		*dest[7].(*types.PaperSize) = types.SizeA4                      // size
		*dest[8].(*types.Orientation) = types.OrientationPortrait       // orientation
		*dest[9].(*types.Language) = types.LanguageEnglish              // language
		_ = dest[10].(*types.WaterQualitySummary).Scan([]byte(
			`{"beach_id":"IEWEBWC170_0000_0200","beach_name":"Dollymount Strand"}`)) // snapshot
		*dest[11].(*string) = "user-1"                                  // generated_by
		*dest[12].(*time.Time) = time.Date(2024, 7, 16, 14, 30, 5, 0, time.UTC) // generated_at
		return nil
	}
}

// --- Create Tests ---

func TestPosterRepository_Create_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := repo.Create(ctx, testPoster(), []byte("%PDF-1.7 content"))
	require.NoError(t, err)
	db.AssertExpectations(t)
}

// The stored binary is gzip-compressed; the original size travels alongside
// as its own column.
func TestPosterRepository_Create_CompressesPDF(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	pdfData := bytes.Repeat([]byte("%PDF-1.7 poster stream data "), 200)

	var captured []any
	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]any)
		}).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := repo.Create(ctx, testPoster(), pdfData)
	require.NoError(t, err)

	stored := captured[11].([]byte)
	assert.Less(t, len(stored), len(pdfData), "stored binary should be compressed")
	assert.Equal(t, len(pdfData), captured[12], "pdf_size must record the original size")

	restored, err := decompressPDF(stored)
	require.NoError(t, err)
	assert.Equal(t, pdfData, restored)

	db.AssertExpectations(t)
}

func TestPosterRepository_Create_DBError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("unique_violation"))

	err := repo.Create(ctx, testPoster(), []byte("%PDF-"))
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)

	db.AssertExpectations(t)
}

// --- GetByID Tests ---

func TestPosterRepository_GetByID_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	row := &mockRow{scanFn: scanPosterRow("poster-1")}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"poster-1"}).Return(row)

	p, err := repo.GetByID(ctx, "poster-1")
	require.NoError(t, err)
	assert.Equal(t, "poster-1", p.ID)
	assert.Equal(t, types.Template1A, p.TemplateUsed)
	require.NotNil(t, p.RecommendedTemplate)
	assert.Equal(t, types.Template1A, *p.RecommendedTemplate)
	assert.Equal(t, "Dollymount Strand", p.Snapshot.BeachName)

	db.AssertExpectations(t)
}

func TestPosterRepository_GetByID_NotFound(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	row := &mockRow{scanErr: pgx.ErrNoRows}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"poster-missing"}).Return(row)

	_, err := repo.GetByID(ctx, "poster-missing")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeNotFoundPoster, appErr.Code)

	db.AssertExpectations(t)
}

// --- GetPDF Tests ---

func TestPosterRepository_GetPDF_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	pdfData := []byte("%PDF-1.7 stored poster")
	compressed, err := compressPDF(pdfData)
	require.NoError(t, err)

	row := &mockRow{scanFn: func(dest ...any) error {
		*dest[0].(*[]byte) = compressed
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"poster-1"}).Return(row)

	data, err := repo.GetPDF(ctx, "poster-1")
	require.NoError(t, err)
	assert.Equal(t, pdfData, data)

	db.AssertExpectations(t)
}

func TestPosterRepository_GetPDF_NotFound(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	row := &mockRow{scanErr: pgx.ErrNoRows}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"poster-missing"}).Return(row)

	_, err := repo.GetPDF(ctx, "poster-missing")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeNotFoundPoster, appErr.Code)

	db.AssertExpectations(t)
}

func TestPosterRepository_GetPDF_CorruptData(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	row := &mockRow{scanFn: func(dest ...any) error {
		*dest[0].(*[]byte) = []byte("not gzip data")
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"poster-1"}).Return(row)

	_, err := repo.GetPDF(ctx, "poster-1")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)

	db.AssertExpectations(t)
}

// --- List Tests ---

func TestPosterRepository_ListByLocation_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
	ctx := context.Background()

	rows := newMockRows(scanPosterRow("poster-2"), scanPosterRow("poster-1"))
	db.On("Query", ctx, mock.AnythingOfType("string"), []any{"loc-1"}).Return(rows, nil)

	posters, err := repo.ListByLocation(ctx, "loc-1")
	require.NoError(t, err)
	require.Len(t, posters, 2)
	assert.Equal(t, "poster-2", posters[0].ID)

	db.AssertExpectations(t)
}

func TestPosterRepository_ListByAuthority_QueryError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewPosterRepository(db)
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

// --- Compression round-trip ---

func TestCompressDecompressPDF(t *testing.T) {
	original := bytes.Repeat([]byte("poster bytes "), 1000)

	compressed, err := compressPDF(original)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(original))

	restored, err := decompressPDF(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}
