package hud

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/neowatch/internal/feed"
)

func TestMeasure(t *testing.T) {
	w, h := Measure([]string{"abc", "abcdef"})
	// basicfont advances 7 pixels per glyph
	if w != 6*7+2*Padding {
		t.Errorf("width = %d, want %d", w, 6*7+2*Padding)
	}
	if h != 2*lineHeight()+2*Padding {
		t.Errorf("height = %d", h)
	}
}

func TestRasterize(t *testing.T) {
	fg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bg := color.RGBA{A: 100}
	img := Rasterize([]string{"HUD"}, fg, bg)

	if img.RGBAAt(0, 0) != bg {
		t.Errorf("corner = %v, want backdrop", img.RGBAAt(0, 0))
	}
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 255 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("no glyph pixels drawn")
	}
}

func TestLines(t *testing.T) {
	rec := &feed.Record{
		Name:        "(2024 DW)",
		Date:        time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		DistanceKm:  1500000,
		VelocityKmS: 12.5,
	}
	f := NewFormatter("en")
	lines := f.Lines(Info{Mode: "tracking", Selected: rec, Hovered: rec, Bodies: 3, FPS: 59.9})

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (hover of the selected body is not repeated):\n%s",
			len(lines), strings.Join(lines, "\n"))
	}
	if !strings.Contains(lines[0], "tracking") || !strings.Contains(lines[0], "60 fps") {
		t.Errorf("status line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "(2024 DW)") || !strings.Contains(lines[1], "2024-03-04") {
		t.Errorf("name line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "1,500,000 km") || !strings.Contains(lines[2], "12.50 km/s") {
		t.Errorf("distance line = %q", lines[2])
	}
}

func TestLinesHoverOnly(t *testing.T) {
	f := NewFormatter("not a tag!")
	lines := f.Lines(Info{Mode: "free", Hovered: &feed.Record{Name: "Eros"}, Shot: "shot.webp"})
	if len(lines) != 4 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[1], "hover: Eros") || lines[3] != "saved shot.webp" {
		t.Errorf("lines = %q", lines)
	}
}
