package hud

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/neowatch/internal/feed"
)

// Info is what the overlay reports each frame.
type Info struct {
	Mode     string
	Hovered  *feed.Record
	Selected *feed.Record
	Bodies   int
	FPS      float64
	Shot     string // last screenshot path
}

// Formatter turns Info into text lines with locale-aware numbers.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a formatter for the given BCP 47 tag. Unknown tags
// fall back to English.
func NewFormatter(tag string) *Formatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.English
	}
	return &Formatter{p: message.NewPrinter(t)}
}

// Lines renders info.
func (f *Formatter) Lines(info Info) []string {
	lines := []string{
		f.p.Sprintf("camera: %s   bodies: %d   %.0f fps", info.Mode, info.Bodies, info.FPS),
	}
	if info.Selected != nil {
		lines = append(lines, f.record("selected", info.Selected)...)
	}
	if info.Hovered != nil && info.Hovered != info.Selected {
		lines = append(lines, f.record("hover", info.Hovered)...)
	}
	if info.Shot != "" {
		lines = append(lines, "saved "+info.Shot)
	}
	return lines
}

func (f *Formatter) record(label string, r *feed.Record) []string {
	return []string{
		f.p.Sprintf("%s: %s  (%s)", label, r.Name, r.Date.Format(feed.DateLayout)),
		f.p.Sprintf("  miss distance %.0f km, %.2f km/s", r.DistanceKm, r.VelocityKmS),
	}
}
