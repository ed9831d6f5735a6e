package pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"

	"bwip/internal/config"
	"bwip/internal/qr"
	"bwip/internal/types"
)

// Generator renders poster PDFs. It is safe for concurrent use; each Render
// call builds an independent document.
type Generator struct {
	cfg      config.PDFConfig
	registry *Registry
	qr       *qr.Generator
	logger   *slog.Logger
}

// NewGenerator creates a poster renderer. cfg.DPI sets the raster resolution
// of embedded QR images.
func NewGenerator(cfg config.PDFConfig, registry *Registry, qrGen *qr.Generator, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, registry: registry, qr: qrGen, logger: logger}
}

// RenderRequest is one rendering job. Summary is read, never mutated; the
// caller keeps ownership of the exact snapshot it passed in.
type RenderRequest struct {
	Location    *types.Location
	Template    types.TemplateCode
	Size        types.PaperSize
	Orientation types.Orientation
	Language    types.Language
	Summary     *types.WaterQualitySummary
}

// Render produces the poster PDF for one request. A missing template variant
// surfaces as a configuration error; any document assembly failure is wrapped
// as a render failure.
func (g *Generator) Render(req RenderRequest) ([]byte, error) {
	tpl, err := g.registry.Lookup(req.Template, req.Language)
	if err != nil {
		return nil, err
	}

	dims := PageDimensions(req.Size, req.Orientation)
	scale := ScaleFactor(req.Size)
	st := NewStyleSheet(scale)

	codes := g.qr.PosterCodes(req.Location.BeachesID, QRPixelSize(scale, g.cfg.DPI))

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: dims.WidthMM, Ht: dims.HeightMM},
	})
	doc.SetTitle(fmt.Sprintf("Bathing Water Poster - %s", req.Location.NameEN), true)
	doc.SetMargins(st.PageMargin, st.PageMargin, st.PageMargin)
	doc.SetAutoPageBreak(false, st.PageMargin)
	doc.AddPage()

	// Core fonts are cp1252; translate so Irish fadas print correctly.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	g.drawHeader(doc, tr, st, tpl, req, dims)
	g.drawNotice(doc, tr, st, tpl, req, dims)
	if req.Summary.CustomNotification != "" {
		g.drawNotificationBox(doc, tr, st, req.Summary.CustomNotification, dims)
	}
	if req.Summary.HasActiveAlert && req.Summary.AlertDetail != nil {
		g.drawAlertBox(doc, tr, st, tpl, req.Language, req.Summary.AlertDetail, dims)
	}
	g.drawStatus(doc, tr, st, tpl, req.Summary, dims)
	g.drawMeasurements(doc, tr, st, tpl, req.Summary, dims)
	g.drawFacilities(doc, tr, st, tpl, req.Language, req.Summary.Facilities, dims)
	g.drawQRRow(doc, tr, st, tpl, codes, dims)
	g.drawFooter(doc, tr, st, tpl, req.Summary, dims)

	if doc.Err() {
		return nil, types.NewAppError(types.ErrCodeInternalRenderFailed,
			"poster document assembly failed", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalRenderFailed,
			"poster document output failed", err)
	}

	g.logger.Debug("poster rendered",
		"beach_id", req.Location.BeachesID,
		"template", req.Template,
		"size", req.Size,
		"bytes", buf.Len())

	return buf.Bytes(), nil
}

func (g *Generator) drawHeader(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, tpl Template, req RenderRequest, dims Dimensions) {
	bandHeight := st.HeaderPad*2 + mmFromPt(st.TitleSize) + mmFromPt(st.SubtitleSize) + st.LineGap

	doc.SetFillColor(0, 102, 153)
	doc.Rect(0, 0, dims.WidthMM, bandHeight, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetXY(st.PageMargin, st.HeaderPad)
	doc.SetFont("Helvetica", "B", st.TitleSize)
	doc.CellFormat(dims.WidthMM-2*st.PageMargin, mmFromPt(st.TitleSize), tr(tpl.Title), "", 1, "C", false, 0, "")

	doc.SetX(st.PageMargin)
	doc.SetFont("Helvetica", "", st.SubtitleSize)
	doc.CellFormat(dims.WidthMM-2*st.PageMargin, mmFromPt(st.SubtitleSize), tr(g.displayName(req)), "", 1, "C", false, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetY(bandHeight + st.SectionGap)
}

// displayName picks the beach name for the selected language. Bilingual
// posters show both names when an Irish name exists.
func (g *Generator) displayName(req RenderRequest) string {
	if req.Language == types.LanguageBilingual && req.Location.NameGA != "" {
		return req.Location.NameEN + " / " + req.Location.NameGA
	}
	return req.Location.Name(req.Language)
}

func (g *Generator) drawNotice(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, tpl Template, req RenderRequest, dims Dimensions) {
	width := dims.WidthMM - 2*st.PageMargin

	doc.SetFont("Helvetica", "", st.BodySize)
	doc.MultiCell(width, mmFromPt(st.BodySize)+st.CellPad/2, tr(tpl.Notice), "", "L", false)

	// Bilingual posters carry the Irish statement below the English one.
	if req.Language == types.LanguageBilingual {
		if ga, err := g.registry.Lookup(req.Template, types.LanguageIrish); err == nil && ga.Notice != tpl.Notice {
			doc.Ln(st.CellPad)
			doc.SetFont("Helvetica", "I", st.BodySize)
			doc.MultiCell(width, mmFromPt(st.BodySize)+st.CellPad/2, tr(ga.Notice), "", "L", false)
		}
	}
	doc.Ln(st.SectionGap)
}

func (g *Generator) drawNotificationBox(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, text string, dims Dimensions) {
	width := dims.WidthMM - 2*st.PageMargin

	doc.SetFillColor(255, 243, 205)
	doc.SetDrawColor(255, 193, 7)
	doc.SetLineWidth(0.4 * st.Scale)
	doc.SetFont("Helvetica", "B", st.BodySize)

	doc.MultiCell(width, mmFromPt(st.BodySize)+st.BoxPad, tr(text), "1", "C", true)
	doc.Ln(st.SectionGap)
}

func (g *Generator) drawAlertBox(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, tpl Template, lang types.Language, alert *types.AlertDetail, dims Dimensions) {
	width := dims.WidthMM - 2*st.PageMargin

	title := alert.TitleEN
	message := alert.MessageEN
	if lang == types.LanguageIrish {
		if alert.TitleGA != "" {
			title = alert.TitleGA
		}
		if alert.MessageGA != "" {
			message = alert.MessageGA
		}
	}

	doc.SetFillColor(248, 215, 218)
	doc.SetDrawColor(220, 53, 69)
	doc.SetLineWidth(0.6 * st.Scale)

	doc.SetFont("Helvetica", "B", st.SubtitleSize)
	doc.SetTextColor(114, 28, 36)
	doc.MultiCell(width, mmFromPt(st.SubtitleSize)+st.BoxPad, tr(tpl.AlertHeading+": "+title), "1", "C", true)

	doc.SetFont("Helvetica", "", st.BodySize)
	doc.MultiCell(width, mmFromPt(st.BodySize)+st.CellPad/2, tr(message), "LRB", "L", true)

	if alert.IsSeasonLong {
		doc.SetFont("Helvetica", "B", st.SmallSize)
		doc.MultiCell(width, mmFromPt(st.SmallSize)+st.CellPad/2, tr("In effect for the full bathing season"), "LRB", "L", true)
	} else if alert.StartDate != "" {
		doc.SetFont("Helvetica", "", st.SmallSize)
		span := "From " + alert.StartDate
		if alert.EndDate != "" {
			span += " to " + alert.EndDate
		}
		doc.MultiCell(width, mmFromPt(st.SmallSize)+st.CellPad/2, tr(span), "LRB", "L", true)
	}

	doc.SetTextColor(0, 0, 0)
	doc.Ln(st.SectionGap)
}

func (g *Generator) drawStatus(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, tpl Template, s *types.WaterQualitySummary, dims Dimensions) {
	width := dims.WidthMM - 2*st.PageMargin

	doc.SetFont("Helvetica", "B", st.SubtitleSize)
	doc.CellFormat(width, mmFromPt(st.SubtitleSize), tr(tpl.StatusHeading), "", 1, "L", false, 0, "")
	doc.Ln(st.CellPad)

	doc.SetFont("Helvetica", "", st.BodySize)
	lineH := mmFromPt(st.BodySize) + st.CellPad/2

	classification := s.Classification
	if classification == "" {
		classification = "Not available"
	}
	if s.ClassificationYear != nil {
		classification = fmt.Sprintf("%s (%d)", classification, *s.ClassificationYear)
	}
	doc.CellFormat(width, lineH, tr("Classification: "+classification), "", 1, "L", false, 0, "")

	if s.LastSampleDate != "" {
		status := s.LastSampleStatus
		if status == "" {
			status = "Pending"
		}
		doc.CellFormat(width, lineH, tr(fmt.Sprintf("Latest sample: %s (%s)", s.LastSampleDate, status)), "", 1, "L", false, 0, "")
	}
	doc.CellFormat(width, lineH, tr("E. coli: "+formatCount(s.EcoliValue)), "", 1, "L", false, 0, "")
	doc.CellFormat(width, lineH, tr("Intestinal Enterococci: "+formatCount(s.EnterococciValue)), "", 1, "L", false, 0, "")
	doc.Ln(st.SectionGap)
}

func (g *Generator) drawMeasurements(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, tpl Template, s *types.WaterQualitySummary, dims Dimensions) {
	if len(s.RecentMeasurements) == 0 {
		return
	}
	width := dims.WidthMM - 2*st.PageMargin

	doc.SetFont("Helvetica", "B", st.SubtitleSize)
	doc.CellFormat(width, mmFromPt(st.SubtitleSize), tr(tpl.MeasurementsHeading), "", 1, "L", false, 0, "")
	doc.Ln(st.CellPad)

	colW := []float64{width * 0.3, width * 0.2, width * 0.2, width * 0.3}
	rowH := mmFromPt(st.BodySize) + st.CellPad

	doc.SetFont("Helvetica", "B", st.BodySize)
	doc.SetFillColor(233, 236, 239)
	headers := []string{"Date", "E. coli", "Enterococci", "Quality"}
	for i, h := range headers {
		doc.CellFormat(colW[i], rowH, tr(h), "1", 0, "C", true, 0, "")
	}
	doc.Ln(rowH)

	doc.SetFont("Helvetica", "", st.BodySize)
	for _, m := range s.RecentMeasurements {
		quality := m.Quality
		if quality == "" {
			quality = "Pending"
		}
		cells := []string{m.Date, formatCount(m.Ecoli), formatCount(m.Enterococci), quality}
		for i, c := range cells {
			doc.CellFormat(colW[i], rowH, tr(c), "1", 0, "C", false, 0, "")
		}
		doc.Ln(rowH)
	}
	doc.Ln(st.SectionGap)
}

func (g *Generator) drawFacilities(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, tpl Template, lang types.Language, f types.Facilities, dims Dimensions) {
	labels := facilityLabels(f, lang)
	if len(labels) == 0 {
		return
	}
	width := dims.WidthMM - 2*st.PageMargin

	doc.SetFont("Helvetica", "B", st.SubtitleSize)
	doc.CellFormat(width, mmFromPt(st.SubtitleSize), tr(tpl.FacilitiesHeading), "", 1, "L", false, 0, "")
	doc.Ln(st.CellPad)

	doc.SetFont("Helvetica", "", st.BodySize)
	doc.MultiCell(width, mmFromPt(st.BodySize)+st.CellPad/2, tr(strings.Join(labels, "  |  ")), "", "L", false)
	doc.Ln(st.SectionGap)
}

// drawQRRow places the code set along the bottom of the page, above the
// footer. Codes that failed to generate are skipped rather than leaving a
// broken image.
func (g *Generator) drawQRRow(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, tpl Template, codes []qr.Image, dims Dimensions) {
	present := make([]qr.Image, 0, len(codes))
	for _, c := range codes {
		if len(c.PNG) > 0 {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return
	}

	labelH := mmFromPt(st.SmallSize) + st.CellPad/2
	rowTop := dims.HeightMM - st.PageMargin - mmFromPt(st.SmallSize)*2 - st.QRSizeMM - labelH - st.SectionGap

	doc.SetXY(st.PageMargin, rowTop-mmFromPt(st.SubtitleSize)-st.CellPad)
	doc.SetFont("Helvetica", "B", st.SubtitleSize)
	doc.CellFormat(dims.WidthMM-2*st.PageMargin, mmFromPt(st.SubtitleSize), tr(tpl.MoreInfoHeading), "", 1, "L", false, 0, "")

	totalW := float64(len(present))*st.QRSizeMM + float64(len(present)-1)*st.QRGapMM
	x := (dims.WidthMM - totalW) / 2
	opts := fpdf.ImageOptions{ImageType: "PNG"}

	for _, c := range present {
		doc.RegisterImageOptionsReader("qr_"+c.Name, opts, bytes.NewReader(c.PNG))
		doc.ImageOptions("qr_"+c.Name, x, rowTop, st.QRSizeMM, st.QRSizeMM, false, opts, 0, "")

		doc.SetXY(x, rowTop+st.QRSizeMM)
		doc.SetFont("Helvetica", "", st.SmallSize)
		doc.CellFormat(st.QRSizeMM, labelH, tr(c.Label), "", 0, "C", false, 0, "")

		x += st.QRSizeMM + st.QRGapMM
	}
}

func (g *Generator) drawFooter(doc *fpdf.Fpdf, tr func(string) string, st StyleSheet, tpl Template, s *types.WaterQualitySummary, dims Dimensions) {
	doc.SetXY(st.PageMargin, dims.HeightMM-st.PageMargin-mmFromPt(st.SmallSize)*2)
	doc.SetFont("Helvetica", "", st.SmallSize)
	doc.SetTextColor(108, 117, 125)

	width := dims.WidthMM - 2*st.PageMargin
	doc.CellFormat(width, mmFromPt(st.SmallSize), tr(tpl.Footer), "", 1, "C", false, 0, "")

	stamp := "Data as of " + s.FetchedAt.Format("2 January 2006 15:04 MST")
	if s.FromMockData {
		stamp += " (sample data)"
	}
	doc.SetX(st.PageMargin)
	doc.CellFormat(width, mmFromPt(st.SmallSize), tr(stamp), "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
}

// formatCount renders a colony count, keeping the distinction between zero
// and not-yet-classified.
func formatCount(v *int) string {
	if v == nil {
		return "Pending"
	}
	return fmt.Sprintf("%d cfu/100ml", *v)
}

func facilityLabels(f types.Facilities, lang types.Language) []string {
	type entry struct {
		on     bool
		en, ga string
	}
	entries := []entry{
		{f.Toilets, "Toilets", "Leithris"},
		{f.Parking, "Parking", "Páirceáil"},
		{f.Lifeguard, "Lifeguard", "Garda Tarrthála"},
		{f.DisabilityAccess, "Accessible", "Inrochtana"},
		{f.BlueFlag, "Blue Flag", "Brat Gorm"},
		{f.DogsAllowed, "Dogs Allowed", "Madraí Ceadaithe"},
	}
	var labels []string
	for _, e := range entries {
		if !e.on {
			continue
		}
		switch lang {
		case types.LanguageIrish:
			labels = append(labels, e.ga)
		case types.LanguageBilingual:
			labels = append(labels, e.en+" / "+e.ga)
		default:
			labels = append(labels, e.en)
		}
	}
	return labels
}

// mmFromPt converts a font size in points to a line height in millimeters.
const ptToMM = 25.4 / 72.0

func mmFromPt(pt float64) float64 {
	return pt * ptToMM * 1.2
}
