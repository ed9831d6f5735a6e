package beaches

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Mock mode serves this deterministic fixture dataset instead of the
// network, keyed by endpoint substring. Caching and the failure paths are
// bypassed entirely while it is active.

func mockResponse(endpoint string, params url.Values) ([]byte, error) {
	switch {
	case strings.Contains(endpoint, "location"):
		beachID := params.Get("beach_id")
		if beachID == "" {
			parts := strings.Split(endpoint, "/")
			beachID = parts[len(parts)-1]
		}
		return json.Marshal(mockLocation(beachID))
	case strings.Contains(endpoint, "measurement"):
		return json.Marshal(mockMeasurements())
	case strings.Contains(endpoint, "alert"):
		return json.Marshal(mockAlerts())
	}
	return []byte("{}"), nil
}

func mockLocation(beachID string) rawLocation {
	dogsAllowed := false
	year := 2024
	return rawLocation{
		BeachID:            beachID,
		Name:               "Dollymount Strand (Mock)",
		BeachName:          "Dollymount Strand (Mock)",
		Description:        "<p>A beautiful sandy beach on Dublin Bay.</p>",
		Classification:     "Excellent Quality",
		ClassificationYear: &year,
		Facilities: map[string]bool{
			"toilets":           true,
			"parking":           true,
			"lifeguard":         true,
			"disability_access": true,
			"blue_flag":         true,
		},
		DogsAllowed: &dogsAllowed,
	}
}

func mockMeasurements() map[string][]rawMeasurement {
	intp := func(v int) *int { return &v }
	return map[string][]rawMeasurement{
		"data": {
			{SampleDate: "2024-07-15", Ecoli: intp(45), Enterococci: intp(28), Quality: "Excellent"},
			{SampleDate: "2024-07-08", Ecoli: intp(52), Enterococci: intp(35), Quality: "Excellent"},
			{SampleDate: "2024-07-01", Ecoli: intp(38), Enterococci: intp(22), Quality: "Excellent"},
		},
	}
}

// mockAlerts is empty by default: the fixture beach has no restrictions.
func mockAlerts() []rawAlert {
	return []rawAlert{}
}
