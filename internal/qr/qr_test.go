package qr

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestGenerateProducesPNG(t *testing.T) {
	g := NewGenerator(slog.Default())

	png, err := g.Generate("https://www.beaches.ie", 200)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestPosterCodesFullSet(t *testing.T) {
	g := NewGenerator(slog.Default())

	images := g.PosterCodes("IEWEBWC170_0000_0200", 128)
	if len(images) != 5 {
		t.Fatalf("len = %d, want 5", len(images))
	}

	wantNames := []string{"tide_tables", "weather", "bathing_faq", "beaches_ie", "beach_url"}
	for i, img := range images {
		if img.Name != wantNames[i] {
			t.Errorf("images[%d].Name = %q, want %q", i, img.Name, wantNames[i])
		}
		if len(img.PNG) == 0 {
			t.Errorf("images[%d] (%s) has empty PNG", i, img.Name)
		}
	}
}

// A failing code degrades to an empty placeholder without aborting the rest
// of the set.
func TestPosterCodesPartialFailure(t *testing.T) {
	g := NewGenerator(slog.Default())
	real := g.encode
	g.encode = func(data string, size int) ([]byte, error) {
		if data == "https://www.beaches.ie/faq" {
			return nil, errors.New("encode failed")
		}
		return real(data, size)
	}

	images := g.PosterCodes("beach-1", 128)
	if len(images) != 5 {
		t.Fatalf("len = %d, want 5", len(images))
	}
	for _, img := range images {
		if img.Name == "bathing_faq" {
			if len(img.PNG) != 0 {
				t.Error("failed code should degrade to empty placeholder")
			}
			continue
		}
		if len(img.PNG) == 0 {
			t.Errorf("%s should still be generated", img.Name)
		}
	}
}
