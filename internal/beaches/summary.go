package beaches

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bwip/internal/types"
)

// recentMeasurementLimit caps the measurement history carried on a poster.
const recentMeasurementLimit = 5

// Summarize fetches location, measurement, and alert data for a beach and
// merges the results into one WaterQualitySummary. Every field is filled
// with a safe default when source data is absent; the summary is always
// producible with partial upstream data. The three sub-fetches run
// concurrently but the call itself is synchronous.
func (c *Client) Summarize(ctx context.Context, beachID string) (*types.WaterQualitySummary, error) {
	var (
		location     *rawLocation
		measurements []rawMeasurement
		alerts       []rawAlert
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		location, err = c.GetLocation(gctx, beachID)
		return err
	})
	g.Go(func() error {
		var err error
		measurements, err = c.GetMeasurements(gctx, beachID, recentMeasurementLimit)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = c.GetAlerts(gctx, beachID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &types.WaterQualitySummary{
		BeachID:            beachID,
		RecentMeasurements: []types.Measurement{},
		Facilities: types.Facilities{
			// Upstream omits the flag for dog-friendly beaches; absence
			// means allowed.
			DogsAllowed: true,
		},
		FetchedAt:    c.now().UTC(),
		FromMockData: c.cfg.UseMockData,
	}

	if location != nil {
		summary.BeachName = location.DisplayName()
		summary.BeachDescription = stripHTML(location.Description)
		summary.Classification = location.Classification
		summary.ClassificationYear = location.ClassificationYear
		applyFacilities(&summary.Facilities, location.Facilities)
		if location.DogsAllowed != nil {
			summary.Facilities.DogsAllowed = *location.DogsAllowed
		}
	}

	if len(measurements) > 0 {
		latest := measurements[0].normalize()
		summary.LastSampleDate = latest.Date
		summary.LastSampleStatus = latest.Quality
		summary.EcoliValue = latest.Ecoli
		summary.EnterococciValue = latest.Enterococci

		n := len(measurements)
		if n > recentMeasurementLimit {
			n = recentMeasurementLimit
		}
		for _, m := range measurements[:n] {
			summary.RecentMeasurements = append(summary.RecentMeasurements, m.normalize())
		}
	}

	if len(alerts) > 0 {
		summary.HasActiveAlert = true
		// The first alert is the primary one surfaced on the poster.
		detail := alerts[0].normalize()
		summary.AlertDetail = &detail
	}

	return summary, nil
}

// applyFacilities copies known facility flags from the upstream map onto the
// fixed flag set, ignoring keys the poster does not surface.
func applyFacilities(dst *types.Facilities, src map[string]bool) {
	for key, val := range src {
		switch key {
		case "toilets":
			dst.Toilets = val
		case "parking":
			dst.Parking = val
		case "lifeguard":
			dst.Lifeguard = val
		case "disability_access":
			dst.DisabilityAccess = val
		case "blue_flag":
			dst.BlueFlag = val
		case "dogs_allowed":
			dst.DogsAllowed = val
		}
	}
}
