package beaches

import (
	"regexp"
	"strings"

	"bwip/internal/types"
)

// The upstream API is loose about key names: several fields appear under two
// different keys depending on the endpoint version. Each raw type models both
// spellings explicitly, and the normalization methods below apply a fixed
// precedence per field instead of scattering duck-typed access through the
// pipeline.
//
// Precedence (primary key wins when both are present):
//
//	name        > beach_name
//	sample_date > date
//	status      > quality
//	ecoli       > ecoli_value
//	enterococci > enterococci_value

// rawLocation is the wire shape of GET /locations/{id}.
type rawLocation struct {
	BeachID            string          `json:"beach_id"`
	Name               string          `json:"name"`
	BeachName          string          `json:"beach_name"`
	Description        string          `json:"description"`
	Classification     string          `json:"classification"`
	ClassificationYear *int            `json:"classification_year"`
	Facilities         map[string]bool `json:"facilities"`
	DogsAllowed        *bool           `json:"dogs_allowed"`
}

// DisplayName resolves the location name with fixed precedence.
func (l *rawLocation) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.BeachName
}

// rawMeasurement is the wire shape of one measurement record.
type rawMeasurement struct {
	SampleDate       string `json:"sample_date"`
	Date             string `json:"date"`
	Status           string `json:"status"`
	Quality          string `json:"quality"`
	Ecoli            *int   `json:"ecoli"`
	EcoliValue       *int   `json:"ecoli_value"`
	Enterococci      *int   `json:"enterococci"`
	EnterococciValue *int   `json:"enterococci_value"`
}

// normalize resolves the key variants into a single Measurement. Absent
// counts stay nil; not-yet-classified is a meaningful state, never zero.
func (m *rawMeasurement) normalize() types.Measurement {
	out := types.Measurement{
		Date:    m.SampleDate,
		Quality: m.Status,
	}
	if out.Date == "" {
		out.Date = m.Date
	}
	if out.Quality == "" {
		out.Quality = m.Quality
	}
	out.Ecoli = firstInt(m.Ecoli, m.EcoliValue)
	out.Enterococci = firstInt(m.Enterococci, m.EnterococciValue)
	return out
}

func firstInt(primary, secondary *int) *int {
	if primary != nil {
		return primary
	}
	return secondary
}

// rawAlert is the wire shape of one alert record.
type rawAlert struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	TitleGA      string `json:"title_ga"`
	Message      string `json:"message"`
	MessageGA    string `json:"message_ga"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	IsSeasonLong bool   `json:"is_season_long"`
}

// normalize converts a wire alert into the summary's alert detail record.
// An empty type defaults to NOTICE, the mildest tier.
func (a *rawAlert) normalize() types.AlertDetail {
	alertType := types.AlertType(a.Type)
	if alertType == "" {
		alertType = types.AlertNotice
	}
	return types.AlertDetail{
		Type:         alertType,
		TitleEN:      a.Title,
		TitleGA:      a.TitleGA,
		MessageEN:    stripHTML(a.Message),
		MessageGA:    stripHTML(a.MessageGA),
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		IsSeasonLong: a.IsSeasonLong,
	}
}

var htmlTagPattern = regexp.MustCompile("<.*?>")

// stripHTML removes markup from upstream free-text fields before they reach
// the renderer.
func stripHTML(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(text, ""))
}
