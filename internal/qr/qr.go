// Package qr generates the scannable codes embedded on posters: four fixed
// application-wide codes plus one per-beach code. Codes use medium error
// correction so they survive print resolution and weathering.
package qr

import (
	"fmt"
	"log/slog"

	qrcode "github.com/skip2/go-qrcode"
)

// CodeConfig pairs the encoded payload with the printed caption.
type CodeConfig struct {
	Data  string
	Label string
}

// Standard codes printed on every poster, in render order.
var standardCodes = []struct {
	Name   string
	Config CodeConfig
}{
	{"tide_tables", CodeConfig{Data: "https://www.met.ie/forecasts/marine-tides", Label: "Tide Tables"}},
	{"weather", CodeConfig{Data: "https://www.met.ie/forecasts/beach", Label: "Weather Forecast"}},
	{"bathing_faq", CodeConfig{Data: "https://www.beaches.ie/faq", Label: "Bathing FAQ"}},
	{"beaches_ie", CodeConfig{Data: "https://www.beaches.ie", Label: "beaches.ie"}},
}

// beachURLFormat is the public beaches.ie page for a single location.
const beachURLFormat = "https://www.beaches.ie/beach/%s"

// Image holds one generated code as an embeddable PNG. Data is empty when
// generation for that code failed; rendering treats it as a placeholder.
type Image struct {
	Name  string
	Label string
	PNG   []byte
}

// Generator produces poster QR code sets.
type Generator struct {
	logger *slog.Logger

	// encode is swappable for tests that need a failing encoder.
	encode func(data string, size int) ([]byte, error)
}

// NewGenerator creates a QR generator.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		logger: logger,
		encode: encodePNG,
	}
}

// encodePNG renders a single code at the given pixel size with medium error
// correction.
func encodePNG(data string, size int) ([]byte, error) {
	return qrcode.Encode(data, qrcode.Medium, size)
}

// Generate produces a named PNG code at the given pixel size.
func (g *Generator) Generate(data string, size int) ([]byte, error) {
	return g.encode(data, size)
}

// PosterCodes generates the full code set for one poster: the four standard
// codes plus the per-beach page code, each at the given pixel size. A
// failure to generate one code degrades that code to an empty placeholder
// and is logged; the remaining codes are still produced.
func (g *Generator) PosterCodes(beachID string, size int) []Image {
	images := make([]Image, 0, len(standardCodes)+1)

	for _, sc := range standardCodes {
		png, err := g.encode(sc.Config.Data, size)
		if err != nil {
			g.logger.Warn("failed to generate QR code",
				"name", sc.Name, "error", err)
			png = nil
		}
		images = append(images, Image{Name: sc.Name, Label: sc.Config.Label, PNG: png})
	}

	beachURL := fmt.Sprintf(beachURLFormat, beachID)
	png, err := g.encode(beachURL, size)
	if err != nil {
		g.logger.Warn("failed to generate beach URL QR code",
			"beach_id", beachID, "error", err)
		png = nil
	}
	images = append(images, Image{Name: "beach_url", Label: "This Beach", PNG: png})

	return images
}
