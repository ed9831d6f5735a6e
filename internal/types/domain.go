package types

import (
	"strings"
	"time"
)

// Location represents a bathing water site managed by a Local Authority.
// Location rows are owned by the surrounding portal; the poster pipeline
// only reads them.
type Location struct {
	ID          string `json:"id" db:"id"`
	AuthorityID string `json:"authority_id" db:"authority_id"`

	// Stable identifier from the beaches.ie API,
	// e.g. "IEWEBWC170_0000_0200".
	BeachesID string `json:"beaches_id" db:"beaches_id"`

	NameEN string `json:"name_en" db:"name_en"`
	NameGA string `json:"name_ga" db:"name_ga"`

	Classification Classification `json:"classification" db:"classification"`

	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`

	DescriptionEN string `json:"description_en,omitempty" db:"description_en"`
	DescriptionGA string `json:"description_ga,omitempty" db:"description_ga"`

	Facilities Facilities `json:"facilities" db:"facilities"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Name returns the display name for the requested language, falling back to
// English when the Irish name is empty. Bilingual callers get both names and
// choose their own layout.
func (l *Location) Name(lang Language) string {
	if lang == LanguageIrish && l.NameGA != "" {
		return l.NameGA
	}
	return l.NameEN
}

// IsIdentified reports whether the location is an identified bathing water.
func (l *Location) IsIdentified() bool {
	return l.Classification == ClassificationIdentified
}

// Facilities is the fixed flag set of amenities surfaced on posters.
type Facilities struct {
	Toilets          bool `json:"toilets"`
	Parking          bool `json:"parking"`
	Lifeguard        bool `json:"lifeguard"`
	DisabilityAccess bool `json:"disability_access"`
	BlueFlag         bool `json:"blue_flag"`
	DogsAllowed      bool `json:"dogs_allowed"`
}

// Measurement is a single water quality sample normalized from the
// beaches.ie API. Ecoli and Enterococci are counts per 100ml; nil means
// not-yet-classified, which is a meaningful state and is never coerced to
// zero.
type Measurement struct {
	Date        string `json:"date"`
	Ecoli       *int   `json:"ecoli"`
	Enterococci *int   `json:"enterococci"`
	Quality     string `json:"quality"`
}

// AlertDetail is the nested alert record carried in a summary while an
// alert is active.
type AlertDetail struct {
	Type         AlertType `json:"type"`
	TitleEN      string    `json:"title_en"`
	TitleGA      string    `json:"title_ga,omitempty"`
	MessageEN    string    `json:"message_en"`
	MessageGA    string    `json:"message_ga,omitempty"`
	StartDate    string    `json:"start_date,omitempty"`
	EndDate      string    `json:"end_date,omitempty"`
	IsSeasonLong bool      `json:"is_season_long"`
}

// WaterQualitySummary aggregates beaches.ie location, measurement, and alert
// data into the single structure consumed by recommendation and rendering.
// It is computed fresh per poster generation and never persisted on its own;
// the orchestrator embeds it as a JSONB snapshot inside the poster record.
type WaterQualitySummary struct {
	BeachID            string        `json:"beach_id"`
	BeachName          string        `json:"beach_name"`
	BeachDescription   string        `json:"beach_description"`
	Classification     string        `json:"classification"`
	ClassificationYear *int          `json:"classification_year"`
	LastSampleDate     string        `json:"last_sample_date"`
	LastSampleStatus   string        `json:"last_sample_status"`
	EcoliValue         *int          `json:"ecoli_value"`
	EnterococciValue   *int          `json:"enterococci_value"`
	RecentMeasurements []Measurement `json:"recent_measurements"`
	HasActiveAlert     bool          `json:"has_active_alert"`
	AlertDetail        *AlertDetail  `json:"alert_detail,omitempty"`
	Facilities         Facilities    `json:"facilities"`
	CustomNotification string        `json:"custom_notification,omitempty"`
	FetchedAt          time.Time     `json:"fetched_at"`
	FromMockData       bool          `json:"from_mock_data"`
}

// TemplateRecommendation is the output of the recommendation engine.
// CanOverride is always true in the current regulations but is modeled as a
// field so a future mandate can pin a template without an engine rewrite.
type TemplateRecommendation struct {
	Recommended TemplateCode `json:"recommended"`
	Reason      string       `json:"reason"`
	CanOverride bool         `json:"can_override"`
}

// Poster is the immutable-after-creation record of one generation event.
// Created once by the orchestrator; never mutated or deleted. The PDF binary
// itself lives in the repository alongside the row.
type Poster struct {
	ID         string `json:"id" db:"id"`
	LocationID string `json:"location_id" db:"location_id"`

	TemplateUsed        TemplateCode  `json:"template_used" db:"template_used"`
	RecommendedTemplate *TemplateCode `json:"recommended_template,omitempty" db:"recommended_template"`
	WasOverridden       bool          `json:"was_overridden" db:"was_overridden"`
	OverrideReason      string        `json:"override_reason,omitempty" db:"override_reason"`

	CustomNotification string `json:"custom_notification,omitempty" db:"custom_notification"`

	Size        PaperSize   `json:"size" db:"size"`
	Orientation Orientation `json:"orientation" db:"orientation"`
	Language    Language    `json:"language" db:"language"`

	// Exact data snapshot used for rendering, stored for provenance.
	Snapshot WaterQualitySummary `json:"snapshot" db:"snapshot"`

	GeneratedBy string    `json:"generated_by" db:"generated_by"`
	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
}

// Validate enforces the override invariant:
//   - overridden posters must carry a non-empty reason and a recommended
//     template that differs from the one used;
//   - non-overridden posters with a recommendation must have used it.
func (p *Poster) Validate() error {
	if !p.TemplateUsed.Valid() {
		return NewAppError(ErrCodeValidationInvalidTemplate,
			"template_used must be one of 1A, 1B, 1C, 2A, 2B", nil)
	}
	if p.WasOverridden {
		if strings.TrimSpace(p.OverrideReason) == "" {
			return NewAppError(ErrCodeValidationOverrideReason,
				"override_reason is required when the recommended template is overridden", nil)
		}
		if p.RecommendedTemplate == nil {
			return NewAppError(ErrCodeValidationOverrideConsistency,
				"overridden poster must record the recommended template", nil)
		}
		if *p.RecommendedTemplate == p.TemplateUsed {
			return NewAppError(ErrCodeValidationOverrideConsistency,
				"overridden poster cannot use the recommended template", nil)
		}
		return nil
	}
	if p.RecommendedTemplate != nil && *p.RecommendedTemplate != p.TemplateUsed {
		return NewAppError(ErrCodeValidationOverrideConsistency,
			"non-overridden poster must use the recommended template", nil)
	}
	return nil
}

// AuditDetails is the structured decision metadata recorded with each
// generation event for compliance review.
type AuditDetails struct {
	Template            TemplateCode  `json:"template"`
	Size                PaperSize     `json:"size"`
	Language            Language      `json:"language"`
	RecommendedTemplate *TemplateCode `json:"recommended_template,omitempty"`
	OverrideReason      string        `json:"override_reason,omitempty"`
	CustomNotification  string        `json:"custom_notification,omitempty"`
}

// AuditEvent is one immutable log row. The poster pipeline only writes
// these; reading them back is the compliance UI's concern.
type AuditEvent struct {
	ID         string       `json:"id" db:"id"`
	ActorID    string       `json:"actor_id" db:"actor_id"`
	Action     AuditAction  `json:"action" db:"action"`
	LocationID string       `json:"location_id" db:"location_id"`
	PosterID   string       `json:"poster_id" db:"poster_id"`
	Details    AuditDetails `json:"details" db:"details"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}
