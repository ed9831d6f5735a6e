// Package pdf renders print-ready poster documents. It is a pure transform:
// given a location, a template code, a physical size, an orientation, a
// language, and a water quality summary, it produces a single PDF binary.
// It holds no persistent state and knows nothing about audit, overrides, or
// persistence.
package pdf

import (
	"math"

	"bwip/internal/types"
)

// Dimensions is a physical page size in millimeters, portrait-oriented.
type Dimensions struct {
	WidthMM  float64
	HeightMM float64
}

// PaperSizes is the fixed lookup of supported poster sizes. Base data is
// portrait-oriented; landscape swaps width and height.
var PaperSizes = map[types.PaperSize]Dimensions{
	types.SizeA1: {WidthMM: 594, HeightMM: 841},
	types.SizeA3: {WidthMM: 297, HeightMM: 420},
	types.SizeA4: {WidthMM: 210, HeightMM: 297},
	types.SizeA5: {WidthMM: 148, HeightMM: 210},
}

// referenceWidthMM is the A1 width every other size is scaled against.
const referenceWidthMM = 594.0

// PageDimensions resolves the physical page size for a size code and
// orientation. Unknown size codes fall back to A1 rather than failing.
func PageDimensions(size types.PaperSize, orientation types.Orientation) Dimensions {
	dims, ok := PaperSizes[size]
	if !ok {
		dims = PaperSizes[types.SizeA1]
	}
	if orientation == types.OrientationLandscape {
		return Dimensions{WidthMM: dims.HeightMM, HeightMM: dims.WidthMM}
	}
	return dims
}

// ScaleFactor computes the dimensionless factor applied to every typographic
// size, spacing, QR dimension, and layout measurement so that visual
// proportions are identical across sizes. It is 1.0 for A1 and
// width/594 for everything else; unknown sizes fall back to A1.
func ScaleFactor(size types.PaperSize) float64 {
	dims, ok := PaperSizes[size]
	if !ok {
		dims = PaperSizes[types.SizeA1]
	}
	return dims.WidthMM / referenceWidthMM
}

// StyleSheet carries every scaled measurement used by the renderer. Font
// sizes are points, spatial measurements millimeters. All values are the A1
// base multiplied by the scale factor, which is what makes an A4 poster a
// proportionally exact shrink of the A1 poster.
type StyleSheet struct {
	Scale float64

	// Typography (pt)
	TitleSize    float64
	SubtitleSize float64
	BodySize     float64
	SmallSize    float64

	// Spacing (mm)
	PageMargin  float64
	HeaderPad   float64
	ContentPad  float64
	BoxPad      float64
	SectionGap  float64
	CellPad     float64
	LineGap     float64

	// QR codes
	QRSizeMM float64
	QRGapMM  float64
}

// A1 base measurements.
const (
	baseTitleSize    = 72.0
	baseSubtitleSize = 48.0
	baseBodySize     = 24.0
	baseSmallSize    = 18.0

	basePageMargin = 10.0
	baseHeaderPad  = 20.0
	baseContentPad = 15.0
	baseBoxPad     = 10.0
	baseSectionGap = 15.0
	baseCellPad    = 5.0
	baseLineGap    = 8.0

	baseQRSizeMM = 60.0
	baseQRGapMM  = 10.0

	// baseQRPixels is the raster size of each QR code at A1 and the
	// reference resolution.
	baseQRPixels = 200.0

	// referenceDPI is the output resolution baseQRPixels was sized for.
	referenceDPI = 300.0
)

// NewStyleSheet builds the scaled style rules for a scale factor.
func NewStyleSheet(scale float64) StyleSheet {
	return StyleSheet{
		Scale:        scale,
		TitleSize:    baseTitleSize * scale,
		SubtitleSize: baseSubtitleSize * scale,
		BodySize:     baseBodySize * scale,
		SmallSize:    baseSmallSize * scale,
		PageMargin:   basePageMargin * scale,
		HeaderPad:    baseHeaderPad * scale,
		ContentPad:   baseContentPad * scale,
		BoxPad:       baseBoxPad * scale,
		SectionGap:   baseSectionGap * scale,
		CellPad:      baseCellPad * scale,
		LineGap:      baseLineGap * scale,
		QRSizeMM:     baseQRSizeMM * scale,
		QRGapMM:      baseQRGapMM * scale,
	}
}

// QRPixelSize is the raster size the QR generator is asked for at a given
// scale factor and output resolution. The value is rounded rather than
// truncated so the pixel ratio between sizes tracks the scale ratio even
// when the product is not a whole number. A non-positive dpi falls back to
// the reference resolution.
func QRPixelSize(scale float64, dpi int) int {
	d := float64(dpi)
	if dpi <= 0 {
		d = referenceDPI
	}
	return int(math.Round(baseQRPixels * scale * d / referenceDPI))
}
