package pdf

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"bwip/internal/config"
	"bwip/internal/qr"
	"bwip/internal/types"
)

func testLocation() *types.Location {
	return &types.Location{
		ID:             "loc-1",
		BeachesID:      "IEWEBWC170_0000_0200",
		NameEN:         "Dollymount Strand",
		NameGA:         "Trá Chnocán Doirinne",
		Classification: types.ClassificationIdentified,
	}
}

func testSummary() *types.WaterQualitySummary {
	ecoli := 45
	year := 2024
	return &types.WaterQualitySummary{
		BeachID:            "IEWEBWC170_0000_0200",
		BeachName:          "Dollymount Strand",
		Classification:     "Excellent Quality",
		ClassificationYear: &year,
		LastSampleDate:     "2024-07-15",
		LastSampleStatus:   "Excellent",
		EcoliValue:         &ecoli,
		RecentMeasurements: []types.Measurement{
			{Date: "2024-07-15", Ecoli: &ecoli, Quality: "Excellent"},
			{Date: "2024-07-08", Quality: "Good"},
		},
		Facilities: types.Facilities{Toilets: true, Parking: true, DogsAllowed: true},
		FetchedAt:  time.Date(2024, 7, 16, 9, 0, 0, 0, time.UTC),
	}
}

func newTestGenerator() *Generator {
	cfg := config.PDFConfig{DPI: 300}
	return NewGenerator(cfg, NewRegistry(), qr.NewGenerator(slog.Default()), slog.Default())
}

var pdfMagic = []byte("%PDF-")

func TestRenderProducesPDF(t *testing.T) {
	g := newTestGenerator()

	out, err := g.Render(RenderRequest{
		Location:    testLocation(),
		Template:    types.Template1A,
		Size:        types.SizeA4,
		Orientation: types.OrientationPortrait,
		Language:    types.LanguageEnglish,
		Summary:     testSummary(),
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(out, pdfMagic) {
		t.Error("output is not a PDF document")
	}
}

// Every size, orientation, and language combination must render; the layout
// only changes in scale, never in viability.
func TestRenderAllCombinations(t *testing.T) {
	g := newTestGenerator()

	sizes := []types.PaperSize{types.SizeA1, types.SizeA3, types.SizeA4, types.SizeA5}
	orientations := []types.Orientation{types.OrientationPortrait, types.OrientationLandscape}
	languages := []types.Language{types.LanguageEnglish, types.LanguageIrish, types.LanguageBilingual}

	for _, size := range sizes {
		for _, o := range orientations {
			for _, lang := range languages {
				out, err := g.Render(RenderRequest{
					Location:    testLocation(),
					Template:    types.Template1B,
					Size:        size,
					Orientation: o,
					Language:    lang,
					Summary:     testSummary(),
				})
				if err != nil {
					t.Errorf("Render(%s, %s, %s) error: %v", size, o, lang, err)
					continue
				}
				if !bytes.HasPrefix(out, pdfMagic) {
					t.Errorf("Render(%s, %s, %s) output is not a PDF", size, o, lang)
				}
			}
		}
	}
}

func TestRenderWithAlertAndNotification(t *testing.T) {
	g := newTestGenerator()

	summary := testSummary()
	summary.CustomNotification = "Car park closed for resurfacing until Friday."
	summary.HasActiveAlert = true
	summary.AlertDetail = &types.AlertDetail{
		Type:      types.AlertAdvisory,
		TitleEN:   "Bathing advisory in place",
		MessageEN: "Elevated bacteria levels following heavy rainfall.",
		StartDate: "2024-07-14",
		EndDate:   "2024-07-18",
	}

	out, err := g.Render(RenderRequest{
		Location:    testLocation(),
		Template:    types.Template1B,
		Size:        types.SizeA3,
		Orientation: types.OrientationLandscape,
		Language:    types.LanguageBilingual,
		Summary:     summary,
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(out, pdfMagic) {
		t.Error("output is not a PDF document")
	}
}

// A summary with nothing in it still renders: sparse upstream data can never
// block poster generation.
func TestRenderMinimalSummary(t *testing.T) {
	g := newTestGenerator()

	out, err := g.Render(RenderRequest{
		Location:    testLocation(),
		Template:    types.Template2B,
		Size:        types.SizeA5,
		Orientation: types.OrientationPortrait,
		Language:    types.LanguageEnglish,
		Summary: &types.WaterQualitySummary{
			BeachID:            "IEWEBWC170_0000_0200",
			RecentMeasurements: []types.Measurement{},
			FetchedAt:          time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(out, pdfMagic) {
		t.Error("output is not a PDF document")
	}
}

func TestRenderMissingTemplateVariant(t *testing.T) {
	empty := &Registry{templates: make(map[templateKey]Template)}
	g := NewGenerator(config.PDFConfig{DPI: 300}, empty, qr.NewGenerator(slog.Default()), slog.Default())

	_, err := g.Render(RenderRequest{
		Location:    testLocation(),
		Template:    types.Template1A,
		Size:        types.SizeA4,
		Orientation: types.OrientationPortrait,
		Language:    types.LanguageEnglish,
		Summary:     testSummary(),
	})

	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Code != types.ErrCodeConfigTemplateNotFound {
		t.Errorf("want %s, got %v", types.ErrCodeConfigTemplateNotFound, err)
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(nil); got != "Pending" {
		t.Errorf("formatCount(nil) = %q", got)
	}
	zero := 0
	if got := formatCount(&zero); got != "0 cfu/100ml" {
		t.Errorf("formatCount(0) = %q, want explicit zero", got)
	}
}

func TestFacilityLabels(t *testing.T) {
	f := types.Facilities{Toilets: true, BlueFlag: true}

	en := facilityLabels(f, types.LanguageEnglish)
	if len(en) != 2 || en[0] != "Toilets" || en[1] != "Blue Flag" {
		t.Errorf("en labels = %v", en)
	}
	ga := facilityLabels(f, types.LanguageIrish)
	if len(ga) != 2 || ga[0] != "Leithris" {
		t.Errorf("ga labels = %v", ga)
	}
	if got := facilityLabels(types.Facilities{}, types.LanguageEnglish); len(got) != 0 {
		t.Errorf("no facilities should yield no labels, got %v", got)
	}
}
