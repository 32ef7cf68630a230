// Package world holds the globe session: the scene, the camera, the light
// and the hover and selection state, advanced one frame at a time.
package world

import (
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/neowatch/internal/engine/camera"
	"github.com/Faultbox/neowatch/internal/engine/input"
	"github.com/Faultbox/neowatch/internal/engine/lighting"
	"github.com/Faultbox/neowatch/internal/engine/picking"
	"github.com/Faultbox/neowatch/internal/engine/scene"
	"github.com/Faultbox/neowatch/internal/feed"
	"github.com/Faultbox/neowatch/internal/logger"
	"github.com/Faultbox/neowatch/pkg/math"
)

// Meshes are the uploaded meshes a world draws with. Any may be nil.
type Meshes struct {
	Globe    scene.Mesh
	Body     scene.Mesh
	Pin      scene.Mesh
	Sky      scene.Mesh
	Particle scene.Mesh
}

// Textures are the optional globe and sky images.
type Textures struct {
	Globe scene.Texture
	Sky   scene.Texture
}

// Controls scale raw input into camera and light motion.
type Controls struct {
	MoveSpeed        float32 // units per frame
	LookSensitivity  float32 // radians per pixel
	RollSpeed        float32 // radians per frame
	LightSensitivity float32 // degrees per pixel
}

// Options configures a world.
type Options struct {
	Records   []feed.Record
	MaxBodies int // 0 keeps every record

	Meshes   Meshes
	Textures Textures
	Controls Controls

	CameraDistance float32
	SunTime        time.Time
	LightDistance  float32

	GlobeSpin     float32 // radians per frame
	BodySize      float32
	PickRadius    float32
	SkyRadius     float32
	HighlightRate float32

	Decay        float64
	Threshold    float64
	EmitInterval int

	Seed uint64
}

// DefaultOptions returns the standard session settings.
func DefaultOptions() Options {
	return Options{
		Controls: Controls{
			MoveSpeed:        0.02,
			LookSensitivity:  0.003,
			RollSpeed:        0.02,
			LightSensitivity: 0.25,
		},
		CameraDistance: 4,
		SunTime:        time.Now(),
		LightDistance:  20,
		GlobeSpin:      0.0005,
		BodySize:       0.03,
		PickRadius:     0.06,
		SkyRadius:      50,
		HighlightRate:  0.12,
		Decay:          scene.DefaultDecay,
		Threshold:      scene.DefaultThreshold,
		EmitInterval:   6,
		Seed:           1,
	}
}

// Viewport describes the screen used for cursor picking.
type Viewport struct {
	Width, Height float32
	Projection    math.Matrix[float32]
}

// Events reports what changed during a step.
type Events struct {
	Marked   bool // a body became selected
	Unmarked bool // the previous selection was cleared
	// LockPointer asks the host to grab the pointer.
	LockPointer bool
}

// World is the session context. It is owned by a single goroutine.
type World struct {
	opts Options
	log  *zap.Logger

	globe     *scene.Entity
	bodies    []*scene.Entity
	pin       *scene.Entity
	pinner    *scene.Pin
	sky       *scene.Entity
	particles *scene.Particles

	camera   *camera.Camera
	light    *lighting.Light
	frame    *scene.Frame
	viewport Viewport

	tracked *scene.Entity
	marked  *scene.Entity

	spheres []picking.Sphere
	stopped bool
}

// New builds a world with one orbiting body per record.
func New(opts Options) *World {
	w := &World{
		opts:   opts,
		log:    logger.Named("world"),
		camera: camera.New(opts.CameraDistance),
		light:  lighting.NewSunLight(opts.SunTime, opts.LightDistance),
	}

	w.particles = scene.NewParticles(opts.Meshes.Particle)
	w.particles.Decay = opts.Decay
	w.particles.Threshold = opts.Threshold
	w.frame = scene.NewFrame(w.particles, opts.Seed)

	w.globe = scene.NewEntity("earth")
	w.globe.Mesh = opts.Meshes.Globe
	w.globe.Texture = opts.Textures.Globe
	w.globe.Behavior = &scene.Spinner{Rate: [3]float32{0, opts.GlobeSpin, 0}}

	records := opts.Records
	if opts.MaxBodies > 0 {
		records = feed.Limit(records, opts.MaxBodies)
	}
	for _, rec := range records {
		w.bodies = append(w.bodies, w.newBody(rec))
	}
	w.spheres = make([]picking.Sphere, len(w.bodies))

	w.pinner = &scene.Pin{Lift: 0.09, Amplitude: 0.015, Rate: 0.08, SpinRate: 0.05}
	w.pin = scene.NewEntity("pin")
	w.pin.Mesh = opts.Meshes.Pin
	w.pin.Behavior = w.pinner
	w.pin.Hidden = true
	w.pin.Transform.SetUniformScale(0.04)
	w.pin.SetBaseColor([4]float32{1, 0.85, 0.2, 1})

	w.sky = scene.NewEntity("sky")
	w.sky.Mesh = opts.Meshes.Sky
	w.sky.Texture = opts.Textures.Sky
	w.sky.Pass = scene.PassSky
	w.sky.Transform.SetUniformScale(opts.SkyRadius)

	w.log.Info("world created",
		zap.Int("bodies", len(w.bodies)),
		zap.Int("records", len(opts.Records)),
		zap.Float32("light_lon", w.light.Longitude),
		zap.Float32("light_lat", w.light.Latitude),
	)
	return w
}

func (w *World) newBody(rec feed.Record) *scene.Entity {
	r := w.frame.Rand
	tilt := (r.Float32() - 0.5) * math32.Pi * 0.6
	phase := r.Float32() * 2 * math32.Pi
	orbit := math.Rotation(tilt, phase, 0)

	o := scene.NewOrbiter(w.globe, orbit, OrbitRadius(rec.DistanceKm), OrbitStep(rec.VelocityKmS), rec)
	o.EmitInterval = max(w.opts.EmitInterval, 1)
	o.Countdown = 1 + r.IntN(o.EmitInterval)

	e := scene.NewEntity(rec.Name)
	e.Mesh = w.opts.Meshes.Body
	e.Behavior = o
	e.Radius = w.opts.PickRadius
	e.Transform.SetUniformScale(w.opts.BodySize)
	e.SetBaseColor([4]float32{0.78, 0.68, 0.58, 1})
	return e
}

// SetViewport updates the screen used for cursor picking.
func (w *World) SetViewport(v Viewport) {
	w.viewport = v
}

// Step advances the world by one frame of input.
func (w *World) Step(s *input.Snapshot) Events {
	var ev Events
	if w.stopped {
		return ev
	}

	if s.Triggered(input.ActionCycleMode) {
		mode := w.camera.CycleMode()
		w.log.Debug("camera mode", zap.Stringer("mode", mode))
	}
	w.move(s)

	w.globe.Update(w.frame)
	for _, b := range w.bodies {
		b.Update(w.frame)
	}
	w.particles.Update()

	w.hover(s)
	if s.Clicks > 0 {
		switch {
		case w.tracked != nil:
			w.mark(w.tracked, &ev)
		case !s.PointerLocked:
			ev.LockPointer = true
		}
	}

	if w.tracked != nil {
		w.tracked.Pulse(w.opts.HighlightRate)
	}
	if w.marked != nil && w.marked != w.tracked {
		w.marked.Pulse(w.opts.HighlightRate)
	}

	if w.marked != nil {
		w.pinner.Reference = w.marked
	} else {
		w.pinner.Reference = w.tracked
	}
	w.pin.Update(w.frame)

	p := w.camera.Position()
	w.sky.Transform.SetTranslation(p.X(), p.Y(), p.Z())
	return ev
}

// move applies light adjustment or camera motion.
func (w *World) move(s *input.Snapshot) {
	c := w.opts.Controls
	anchor := w.globe.WorldPosition()
	if s.Down(input.KeyLight) {
		w.light.Adjust(s.MouseDX*c.LightSensitivity, -s.MouseDY*c.LightSensitivity)
		w.camera.Update(camera.Motion{}, anchor)
		return
	}
	w.camera.Update(camera.Motion{
		Strafe:   s.Axis(input.KeyRight, input.KeyLeft) * c.MoveSpeed,
		Vertical: s.Axis(input.KeyUp, input.KeyDown) * c.MoveSpeed,
		Forward:  s.Axis(input.KeyForward, input.KeyBack) * c.MoveSpeed,
		Pitch:    -s.MouseDY * c.LookSensitivity,
		Yaw:      -s.MouseDX * c.LookSensitivity,
		Roll:     s.Axis(input.KeyRollLeft, input.KeyRollRight) * c.RollSpeed,
	}, anchor)
}

// ray returns the picking ray: the view ray while the pointer is locked,
// the ray under the cursor otherwise.
func (w *World) ray(s *input.Snapshot) picking.Ray {
	if s.PointerLocked || w.viewport.Width <= 0 || w.viewport.Projection.IsZero() {
		return picking.NewRay(w.camera.Position(), w.camera.Forward())
	}
	inv, ok := math.Inverse(w.viewport.Projection.Mul(w.camera.View()))
	if !ok {
		return picking.NewRay(w.camera.Position(), w.camera.Forward())
	}
	return picking.ScreenToRay(float32(s.CursorX), float32(s.CursorY), w.viewport.Width, w.viewport.Height, inv)
}

// hover picks the nearest body under the ray and makes it the tracked one.
func (w *World) hover(s *input.Snapshot) {
	for i, b := range w.bodies {
		p := b.WorldPosition()
		w.spheres[i] = picking.Sphere{Center: [3]float32{p.X(), p.Y(), p.Z()}, Radius: b.Radius}
	}
	var hit *scene.Entity
	if idx, _ := picking.Pick(w.ray(s), w.spheres); idx >= 0 {
		hit = w.bodies[idx]
	}
	if hit == w.tracked {
		return
	}
	if w.tracked != nil {
		w.tracked.ResetHighlight()
	}
	w.tracked = hit
}

// mark selects target. Selecting the marked body again clears the mark.
func (w *World) mark(target *scene.Entity, ev *Events) {
	if target == w.marked {
		target = nil
	}
	if target == nil && w.marked == nil {
		return
	}
	if w.marked != nil {
		w.marked.ResetHighlight()
		ev.Unmarked = true
	}
	w.marked = target
	if target == nil {
		w.camera.Mark(nil)
		w.log.Debug("selection cleared")
		return
	}
	w.camera.Mark(target)
	ev.Marked = true
	w.log.Debug("body selected", zap.String("name", target.Name))
}

// Render draws entities, particles and the sky, then drops expired particles.
func (w *World) Render(d scene.Drawer) {
	if w.stopped {
		return
	}
	w.globe.RenderRoot(d)
	for _, b := range w.bodies {
		b.RenderRoot(d)
	}
	w.pin.RenderRoot(d)
	w.particles.Render(d)
	w.sky.RenderRoot(d)
	w.Sweep()
}

// Sweep removes expired particles and returns how many were dropped.
func (w *World) Sweep() int {
	return w.particles.Sweep()
}

// Close stops the world and releases the scene.
func (w *World) Close() {
	if w.stopped {
		return
	}
	w.stopped = true
	w.camera.Mark(nil)
	w.tracked, w.marked = nil, nil
	w.pinner.Reference = nil
	w.particles.Clear()
	for _, b := range w.bodies {
		b.Destroy()
	}
	w.bodies = nil
	w.spheres = nil
	w.log.Info("world closed")
}

// Stopped reports whether Close has run.
func (w *World) Stopped() bool { return w.stopped }

// Camera returns the session camera.
func (w *World) Camera() *camera.Camera { return w.camera }

// Light returns the session light.
func (w *World) Light() *lighting.Light { return w.light }

// Bodies returns the orbiting bodies.
func (w *World) Bodies() []*scene.Entity { return w.bodies }

// Particles returns the particle set.
func (w *World) Particles() *scene.Particles { return w.particles }

// Tracked returns the hovered body, or nil.
func (w *World) Tracked() *scene.Entity { return w.tracked }

// Marked returns the selected body, or nil.
func (w *World) Marked() *scene.Entity { return w.marked }

// Hovered returns the record of the hovered body, or nil.
func (w *World) Hovered() *feed.Record { return record(w.tracked) }

// Selected returns the record of the selected body, or nil.
func (w *World) Selected() *feed.Record { return record(w.marked) }

func record(e *scene.Entity) *feed.Record {
	if e == nil {
		return nil
	}
	if o, ok := e.Behavior.(*scene.Orbiter); ok {
		return &o.Record
	}
	return nil
}
