package posters

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"bwip/internal/types"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w\-.]`)
	repeatedUnderscores = regexp.MustCompile(`_+`)
)

// SanitizeFilename makes a beach name safe for use as a download filename:
// spaces become underscores, anything outside [A-Za-z0-9_\-.] is dropped,
// and runs of underscores collapse to one.
func SanitizeFilename(name string) string {
	s := strings.ReplaceAll(name, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	s = repeatedUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// PosterFilename builds the canonical download filename for a poster:
// sanitized beach name, template code, size, and the generation timestamp.
func PosterFilename(beachName string, template types.TemplateCode, size types.PaperSize, generatedAt time.Time) string {
	name := SanitizeFilename(beachName)
	if name == "" {
		name = "poster"
	}
	return fmt.Sprintf("%s_%s_%s_%s.pdf",
		name, template, size, generatedAt.UTC().Format("20060102_150405"))
}
