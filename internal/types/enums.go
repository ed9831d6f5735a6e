package types

// Classification is the regulatory category of a bathing water site.
// IDENTIFIED waters receive full EPA monitoring; NON_IDENTIFIED waters sit
// in a lesser regulatory tier.
type Classification string

const (
	ClassificationIdentified    Classification = "IDENTIFIED"
	ClassificationNonIdentified Classification = "NON_IDENTIFIED"
)

// Valid reports whether the classification is one of the two known values.
// Anything else is an upstream data error, never silently defaulted.
func (c Classification) Valid() bool {
	return c == ClassificationIdentified || c == ClassificationNonIdentified
}

// TemplateCode identifies one of the five fixed regulatory poster layouts.
type TemplateCode string

const (
	Template1A TemplateCode = "1A" // Identified, no restrictions
	Template1B TemplateCode = "1B" // Identified, temporary restrictions
	Template1C TemplateCode = "1C" // Identified, season-long restrictions
	Template2A TemplateCode = "2A" // Non-identified, with restrictions
	Template2B TemplateCode = "2B" // Non-identified, no restrictions
)

// Valid reports whether the code is one of the five defined templates.
func (t TemplateCode) Valid() bool {
	switch t {
	case Template1A, Template1B, Template1C, Template2A, Template2B:
		return true
	}
	return false
}

// Classification returns the classification a template code belongs to.
// The 1x family serves identified waters, the 2x family non-identified.
func (t TemplateCode) Classification() Classification {
	switch t {
	case Template1A, Template1B, Template1C:
		return ClassificationIdentified
	case Template2A, Template2B:
		return ClassificationNonIdentified
	}
	return ""
}

// PaperSize identifies a physical poster size.
type PaperSize string

const (
	SizeA1 PaperSize = "A1"
	SizeA3 PaperSize = "A3"
	SizeA4 PaperSize = "A4"
	SizeA5 PaperSize = "A5"
)

// Valid reports whether the size is one of the four supported codes.
func (s PaperSize) Valid() bool {
	switch s {
	case SizeA1, SizeA3, SizeA4, SizeA5:
		return true
	}
	return false
}

// Orientation identifies the page orientation of a poster.
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// Valid reports whether the orientation is a supported value.
func (o Orientation) Valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// Language identifies the poster language selection.
type Language string

const (
	LanguageEnglish   Language = "en"
	LanguageIrish     Language = "ga"
	LanguageBilingual Language = "bilingual"
)

// Valid reports whether the language is a supported value.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageIrish || l == LanguageBilingual
}

// AlertType categorizes an active bathing water alert. The recommendation
// engine does not consult this; it is carried for display on the poster.
type AlertType string

const (
	AlertNotice      AlertType = "NOTICE"
	AlertAdvisory    AlertType = "ADVISORY"
	AlertRestriction AlertType = "RESTRICTION"
	AlertClosure     AlertType = "CLOSURE"
)

// AuditAction identifies the kind of event recorded in the audit log.
type AuditAction string

const (
	AuditPosterGenerated AuditAction = "POSTER_GENERATED"
	AuditDataSync        AuditAction = "DATA_SYNC"
)

// GenerationState is the step of the poster generation state machine.
// A generation request passes through these states in order, or terminates
// in StateFailed from any step.
type GenerationState string

const (
	StateRequested   GenerationState = "REQUESTED"
	StateValidated   GenerationState = "VALIDATED"
	StateDataFetched GenerationState = "DATA_FETCHED"
	StateRendered    GenerationState = "RENDERED"
	StatePersisted   GenerationState = "PERSISTED"
	StateAudited     GenerationState = "AUDITED"
	StateFailed      GenerationState = "FAILED"
)
