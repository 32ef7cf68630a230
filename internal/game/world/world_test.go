package world

import (
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/neowatch/internal/engine/camera"
	"github.com/Faultbox/neowatch/internal/engine/input"
	"github.com/Faultbox/neowatch/internal/engine/scene"
	"github.com/Faultbox/neowatch/internal/feed"
	"github.com/Faultbox/neowatch/pkg/math"
)

type fakeMesh struct{}

func (fakeMesh) Draw() {}

type recorder struct {
	names map[string]int
}

func (r *recorder) Draw(c *scene.DrawCall) {
	if r.names == nil {
		r.names = make(map[string]int)
	}
	r.names[c.Name]++
}

func rec(name string, km, kmS float64) feed.Record {
	return feed.Record{
		Name:        name,
		Date:        time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		DistanceKm:  km,
		VelocityKmS: kmS,
	}
}

func newTestWorld(t *testing.T, records ...feed.Record) *World {
	t.Helper()
	opts := DefaultOptions()
	opts.Records = records
	opts.SunTime = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	m := fakeMesh{}
	opts.Meshes = Meshes{Globe: m, Body: m, Pin: m, Sky: m, Particle: m}
	w := New(opts)
	t.Cleanup(w.Close)
	return w
}

var locked = input.Snapshot{PointerLocked: true}

// aim puts a free camera two units in front of b, looking at it.
func aim(w *World, b *scene.Entity) {
	c := w.Camera()
	c.SetMode(camera.Free)
	c.M.SetIdentity()
	p := b.WorldPosition()
	c.SetPosition(p.X(), p.Y(), p.Z()+2)
}

// lookAway points a free camera away from the whole scene.
func lookAway(w *World) {
	c := w.Camera()
	c.SetMode(camera.Free)
	c.M.CopyFrom(math.RotationY[float32](math32.Pi))
	c.SetPosition(0, 0, 100)
}

func step(w *World, s input.Snapshot) Events {
	return w.Step(&s)
}

func TestOrbitRadiusMapping(t *testing.T) {
	if OrbitRadius(1) != MinRadius || OrbitRadius(NearKm) != MinRadius {
		t.Error("near distances not clamped to MinRadius")
	}
	if OrbitRadius(FarKm*10) != MaxRadius {
		t.Error("far distances not clamped to MaxRadius")
	}
	prev := OrbitRadius(NearKm)
	for _, km := range []float64{2e4, 1e5, 3.8e5, 1e6, 7e6, 5e7} {
		r := OrbitRadius(km)
		if r <= prev {
			t.Errorf("OrbitRadius(%g) = %v, not above %v", km, r, prev)
		}
		prev = r
	}
}

func TestOrbitStepMapping(t *testing.T) {
	tests := []struct {
		kmS  float64
		want float32
	}{
		{0, MinStep},
		{5, 5 * StepPerKmS},
		{100, MaxStep},
	}
	for _, tt := range tests {
		if got := OrbitStep(tt.kmS); math32.Abs(got-tt.want) > 1e-7 {
			t.Errorf("OrbitStep(%v) = %v, want %v", tt.kmS, got, tt.want)
		}
	}
}

func TestNewLimitsBodies(t *testing.T) {
	opts := DefaultOptions()
	opts.Records = []feed.Record{
		rec("far", 9e6, 5), rec("near", 2e5, 5), rec("mid", 1e6, 5), rec("nearest", 5e4, 5),
	}
	opts.MaxBodies = 2
	w := New(opts)
	defer w.Close()

	if len(w.Bodies()) != 2 {
		t.Fatalf("bodies = %d, want 2", len(w.Bodies()))
	}
	names := map[string]bool{}
	for _, b := range w.Bodies() {
		names[b.Name] = true
	}
	if !names["near"] || !names["nearest"] {
		t.Errorf("kept %v, want the two closest", names)
	}
}

func TestBodiesOrbitAtMappedRadius(t *testing.T) {
	r := rec("2024 AB", 1e6, 10)
	w := newTestWorld(t, r)
	for i := 0; i < 5; i++ {
		step(w, locked)
	}
	p := w.Bodies()[0].WorldPosition()
	d := math.Vec3(p.X(), p.Y(), p.Z()).Norm()
	if want := OrbitRadius(r.DistanceKm); math32.Abs(d-want) > 1e-4 {
		t.Errorf("distance from globe = %v, want %v", d, want)
	}
}

func TestHoverAndMark(t *testing.T) {
	w := newTestWorld(t, rec("2024 AB", 1e6, 10))
	b := w.Bodies()[0]

	step(w, locked)
	aim(w, b)
	step(w, locked)
	if w.Tracked() != b {
		t.Fatal("aimed body not tracked")
	}
	if w.Hovered() == nil || w.Hovered().Name != "2024 AB" {
		t.Errorf("Hovered() = %v", w.Hovered())
	}
	if w.Selected() != nil {
		t.Error("selected before click")
	}

	click := locked
	click.Clicks = 1
	aim(w, b)
	ev := step(w, click)
	if !ev.Marked || w.Marked() != b {
		t.Fatalf("click did not mark: %+v", ev)
	}
	if w.Camera().Marked() == nil {
		t.Error("camera not tracking the marked body")
	}
	if w.Selected().Name != "2024 AB" {
		t.Errorf("Selected() = %v", w.Selected())
	}
	if w.pin.Hidden {
		t.Error("pin hidden while a body is marked")
	}

	aim(w, b)
	ev = step(w, click)
	if !ev.Unmarked || ev.Marked || w.Marked() != nil {
		t.Fatalf("second click did not demote: %+v", ev)
	}
	if !w.Camera().Offset().IsZero() {
		t.Error("tracking offset kept after demotion")
	}
}

func TestHoverChangeResetsHighlight(t *testing.T) {
	w := newTestWorld(t, rec("2024 AB", 1e6, 10))
	b := w.Bodies()[0]
	base := b.Color

	step(w, locked)
	aim(w, b)
	step(w, locked)
	step(w, locked)
	if b.Phase() == 0 {
		t.Fatal("tracked body not pulsing")
	}

	lookAway(w)
	step(w, locked)
	if w.Tracked() != nil {
		t.Fatal("body still tracked")
	}
	if b.Phase() != 0 || b.Color != base {
		t.Errorf("highlight not reset: phase %v color %v", b.Phase(), b.Color)
	}
}

func TestUnlockedClickOnNothingLocksPointer(t *testing.T) {
	w := newTestWorld(t, rec("2024 AB", 1e6, 10))
	lookAway(w)
	ev := step(w, input.Snapshot{Clicks: 1})
	if !ev.LockPointer || ev.Marked {
		t.Errorf("events = %+v, want LockPointer", ev)
	}
}

func TestLockedClickOnNothingIsNoop(t *testing.T) {
	w := newTestWorld(t, rec("2024 AB", 1e6, 10))
	lookAway(w)
	click := locked
	click.Clicks = 1
	if ev := step(w, click); ev != (Events{}) {
		t.Errorf("events = %+v, want none", ev)
	}
}

func TestLockedClickOnNothingKeepsSelection(t *testing.T) {
	w := newTestWorld(t, rec("2024 AB", 1e6, 10))
	b := w.Bodies()[0]
	step(w, locked)
	aim(w, b)
	click := locked
	click.Clicks = 1
	step(w, click)
	if w.Marked() != b {
		t.Fatal("body not marked")
	}

	lookAway(w)
	ev := step(w, click)
	if ev != (Events{}) {
		t.Errorf("events = %+v, want none", ev)
	}
	if w.Marked() != b {
		t.Errorf("marked = %v, want %s", w.Marked(), b.Name)
	}
	if w.Camera().Marked() == nil {
		t.Error("camera lost its marked target")
	}
}

func TestTrackingFollowsMarkedBody(t *testing.T) {
	w := newTestWorld(t, rec("2024 AB", 1e6, 10))
	b := w.Bodies()[0]
	step(w, locked)
	aim(w, b)
	click := locked
	click.Clicks = 1
	step(w, click)
	if w.Marked() != b {
		t.Fatal("body not marked")
	}

	w.Camera().SetMode(camera.Tracking)
	offset := w.Camera().Offset().Clone()
	for i := 0; i < 30; i++ {
		p := b.WorldPosition()
		want := p.Add(b.OrbitMatrix().Mul(offset))
		step(w, locked)
		got := w.Camera().Position()
		for k := 0; k < 3; k++ {
			if math32.Abs(got.Elem(k)-want.Elem(k)) > 1e-4 {
				t.Fatalf("frame %d: camera %v, want %v", i, got, want)
			}
		}
	}
}

func TestFreeToLockedResetsOrientation(t *testing.T) {
	w := newTestWorld(t)
	s := locked
	s.MouseDX, s.MouseDY = 30, -12
	w.Camera().SetMode(camera.Free)
	step(w, s)
	if w.Camera().M.Equal(math.Identity[float32](4)) {
		t.Fatal("free mode did not rotate")
	}

	s.Actions[input.ActionCycleMode] = 1 // free -> tracking
	step(w, s)
	s.Actions[input.ActionCycleMode] = 1 // tracking -> locked
	step(w, s)
	if w.Camera().Mode() != camera.Locked {
		t.Fatalf("mode = %v", w.Camera().Mode())
	}
	if !w.Camera().M.Equal(math.Identity[float32](4)) {
		t.Error("orientation not identity after entering locked")
	}
}

func TestLightAdjust(t *testing.T) {
	w := newTestWorld(t)
	w.Light().Set(10, 0)
	before := w.Camera().Position()

	s := locked
	s.Held[input.KeyLight] = true
	s.MouseDX, s.MouseDY = 4, -8
	step(w, s)

	l := w.Light()
	if math32.Abs(l.Longitude-11) > 1e-5 || math32.Abs(l.Latitude-2) > 1e-5 {
		t.Errorf("light = (%v, %v), want (11, 2)", l.Longitude, l.Latitude)
	}
	if !w.Camera().Position().ApproxEqual(before, 1e-5) {
		t.Error("camera moved while adjusting the light")
	}
}

func TestRender(t *testing.T) {
	w := newTestWorld(t, rec("a", 1e6, 10), rec("b", 2e6, 10))
	lookAway(w)
	for i := 0; i < 20; i++ {
		step(w, locked)
	}
	var r recorder
	w.Render(&r)
	for _, name := range []string{"earth", "a", "b", "sky", "particle"} {
		if r.names[name] == 0 {
			t.Errorf("no draw call for %q", name)
		}
	}
	if r.names["pin"] != 0 {
		t.Error("pin drawn with nothing hovered or marked")
	}

	w.Particles().Threshold = 2
	w.Render(&recorder{})
	if n := w.Particles().Len(); n != 0 {
		t.Errorf("%d expired particles survived render", n)
	}
}

func TestClose(t *testing.T) {
	w := newTestWorld(t, rec("a", 1e6, 10))
	w.Close()
	if !w.Stopped() || w.Bodies() != nil {
		t.Fatal("world not torn down")
	}
	click := locked
	click.Clicks = 1
	if ev := step(w, click); ev != (Events{}) {
		t.Errorf("step after close = %+v", ev)
	}
	var r recorder
	w.Render(&r)
	if len(r.names) != 0 {
		t.Errorf("render after close drew %v", r.names)
	}
}
