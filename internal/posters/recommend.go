// Package posters implements the template recommendation engine and the
// poster generation orchestrator. Recommendation is a pure decision over
// classification and restriction state; orchestration ties data fetch,
// rendering, persistence, and audit into one state machine.
package posters

import (
	"fmt"

	"bwip/internal/types"
)

// Recommendation reasons. These exact strings are returned to clients and
// recorded in audit rows, so they are stable API.
const (
	reasonIdentifiedNoRestriction = "Identified bathing water with no restrictions"
	reasonIdentifiedSeasonLong    = "Identified bathing water with season-long restriction"
	reasonIdentifiedTemporary     = "Identified bathing water with temporary restriction"
	reasonNonIdentifiedRestricted = "Non-identified water with restrictions"
	reasonNonIdentifiedClear      = "Non-identified water with no restrictions"
)

// Recommend selects the template mandated for a location's current state.
// The decision depends only on classification and restriction state; the
// alert's type is deliberately not consulted. Every (classification,
// restriction) combination maps to exactly one template, so for valid input
// this never fails; an unrecognized classification is a data error, never a
// silent default.
func Recommend(classification types.Classification, summary *types.WaterQualitySummary) (*types.TemplateRecommendation, error) {
	restricted := summary.HasActiveAlert
	seasonLong := restricted && summary.AlertDetail != nil && summary.AlertDetail.IsSeasonLong

	var code types.TemplateCode
	var reason string

	switch classification {
	case types.ClassificationIdentified:
		switch {
		case !restricted:
			code, reason = types.Template1A, reasonIdentifiedNoRestriction
		case seasonLong:
			code, reason = types.Template1C, reasonIdentifiedSeasonLong
		default:
			code, reason = types.Template1B, reasonIdentifiedTemporary
		}
	case types.ClassificationNonIdentified:
		if restricted {
			code, reason = types.Template2A, reasonNonIdentifiedRestricted
		} else {
			code, reason = types.Template2B, reasonNonIdentifiedClear
		}
	default:
		return nil, types.NewAppErrorWithDetails(types.ErrCodeConfigUnknownClassification,
			fmt.Sprintf("unknown classification %q", classification), nil,
			map[string]any{"classification": string(classification)})
	}

	return &types.TemplateRecommendation{
		Recommended: code,
		Reason:      reason,
		CanOverride: true,
	}, nil
}

// TemplatesFor lists the template codes valid for a classification, in
// display order. An authority may override the recommendation but only
// within its classification family.
func TemplatesFor(classification types.Classification) []types.TemplateCode {
	switch classification {
	case types.ClassificationIdentified:
		return []types.TemplateCode{types.Template1A, types.Template1B, types.Template1C}
	case types.ClassificationNonIdentified:
		return []types.TemplateCode{types.Template2A, types.Template2B}
	}
	return nil
}
