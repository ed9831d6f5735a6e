package types

import (
	"testing"
	"time"
)

// TestWaterQualitySummaryScanRoundTrip verifies the snapshot survives a
// Value/Scan cycle, including the optional numeric fields that must stay nil
// rather than becoming zero.
func TestWaterQualitySummaryScanRoundTrip(t *testing.T) {
	ecoli := 45
	in := WaterQualitySummary{
		BeachID:          "IEWEBWC170_0000_0200",
		BeachName:        "Dollymount Strand",
		Classification:   "Excellent Quality",
		LastSampleDate:   "2024-07-15",
		LastSampleStatus: "Excellent",
		EcoliValue:       &ecoli,
		RecentMeasurements: []Measurement{
			{Date: "2024-07-15", Ecoli: &ecoli, Quality: "Excellent"},
		},
		HasActiveAlert: true,
		AlertDetail: &AlertDetail{
			Type:         AlertAdvisory,
			TitleEN:      "Bathing advisory",
			IsSeasonLong: true,
		},
		FetchedAt: time.Date(2024, 7, 16, 9, 0, 0, 0, time.UTC),
	}

	val, err := in.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var out WaterQualitySummary
	if err := out.Scan(val); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if out.BeachID != in.BeachID || out.BeachName != in.BeachName {
		t.Errorf("identity fields lost: %+v", out)
	}
	if out.EcoliValue == nil || *out.EcoliValue != 45 {
		t.Errorf("EcoliValue = %v, want 45", out.EcoliValue)
	}
	if out.EnterococciValue != nil {
		t.Errorf("EnterococciValue should remain nil, got %v", *out.EnterococciValue)
	}
	if out.AlertDetail == nil || !out.AlertDetail.IsSeasonLong {
		t.Errorf("alert detail lost: %+v", out.AlertDetail)
	}
}

func TestScanJSONBNil(t *testing.T) {
	var s WaterQualitySummary
	if err := s.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	var f Facilities
	if err := f.Scan("{}"); err != nil {
		t.Fatalf("Scan(string) error: %v", err)
	}
	if err := f.Scan(42); err == nil {
		t.Error("Scan(int) should fail with unsupported type")
	}
}
