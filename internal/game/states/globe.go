package states

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/neowatch/internal/engine/audio"
	"github.com/Faultbox/neowatch/internal/engine/debug"
	"github.com/Faultbox/neowatch/internal/engine/hud"
	"github.com/Faultbox/neowatch/internal/engine/input"
	"github.com/Faultbox/neowatch/internal/engine/mesh"
	"github.com/Faultbox/neowatch/internal/engine/renderer"
	"github.com/Faultbox/neowatch/internal/engine/scene"
	"github.com/Faultbox/neowatch/internal/engine/texture"
	"github.com/Faultbox/neowatch/internal/feed"
	"github.com/Faultbox/neowatch/internal/game/world"
	"github.com/Faultbox/neowatch/internal/logger"
)

// Vertex colors, shown until a texture is ready.
var (
	white = [4]float32{1, 1, 1, 1}
	ocean = [4]float32{0.2, 0.4, 0.85, 1}
	space = [4]float32{0.02, 0.02, 0.05, 1}
)

const cueLength = 120 * time.Millisecond

// GlobeConfig contains configuration for the globe state.
type GlobeConfig struct {
	World        world.Options // meshes and textures are filled in on Enter
	GlobeTexture *texture.Handle
	SkyTexture   *texture.Handle
	ShowHUD      bool
	ShowFPS      bool
}

// GlobeDeps are the long-lived services the globe state draws and plays with.
// Overlay, Audio and Screenshots may be nil.
type GlobeDeps struct {
	Host        Host
	Renderer    *renderer.Renderer
	Overlay     *hud.Overlay
	Formatter   *hud.Formatter
	Audio       *audio.Manager
	Screenshots *debug.ScreenshotCapture
}

// GlobeState runs the interactive globe session.
type GlobeState struct {
	config  GlobeConfig
	deps    GlobeDeps
	records []feed.Record
	log     *zap.Logger

	world  *world.World
	meshes []*mesh.GPU

	fps      float64
	lastShot string
	shoot    bool
}

// NewGlobeState creates the globe state for the given records.
func NewGlobeState(cfg GlobeConfig, deps GlobeDeps, records []feed.Record) *GlobeState {
	return &GlobeState{
		config:  cfg,
		deps:    deps,
		records: records,
		log:     logger.Named("globe"),
	}
}

// Enter uploads meshes and builds the world.
func (s *GlobeState) Enter() error {
	s.log.Info("entering GlobeState", zap.Int("records", len(s.records)))
	s.deps.Host.SetInputAttached(true)

	upload := func(name string, g *mesh.Geometry) (*mesh.GPU, error) {
		m, err := mesh.Upload(g)
		if err != nil {
			return nil, fmt.Errorf("upload %s mesh: %w", name, err)
		}
		s.meshes = append(s.meshes, m)
		return m, nil
	}

	var meshes world.Meshes
	parts := []struct {
		name string
		geom *mesh.Geometry
		dst  *scene.Mesh
	}{
		{"globe", mesh.Sphere(48, 96, ocean), &meshes.Globe},
		{"body", mesh.Sphere(6, 10, white), &meshes.Body},
		{"pin", mesh.Cone(16, 0.5, 2, white), &meshes.Pin},
		{"sky", mesh.Inside(mesh.Sphere(16, 32, space)), &meshes.Sky},
		{"particle", mesh.Octahedron(white), &meshes.Particle},
	}
	for _, p := range parts {
		m, err := upload(p.name, p.geom)
		if err != nil {
			s.release()
			s.deps.Host.SetInputAttached(false)
			return err
		}
		*p.dst = m
	}

	opts := s.config.World
	opts.Records = s.records
	opts.Meshes = meshes
	if s.config.GlobeTexture != nil {
		opts.Textures.Globe = s.config.GlobeTexture
	}
	if s.config.SkyTexture != nil {
		opts.Textures.Sky = s.config.SkyTexture
	}
	s.world = world.New(opts)

	w, h := s.deps.Host.Size()
	s.Resize(w, h)

	s.prepareCues()
	return nil
}

// prepareCues synthesizes any cue the audio manager has not loaded.
func (s *GlobeState) prepareCues() {
	a := s.deps.Audio
	if a == nil {
		return
	}
	tones := []struct {
		cue  audio.Cue
		freq float64
	}{
		{audio.CueSelect, 880},
		{audio.CueDeselect, 440},
		{audio.CueShutter, 1320},
	}
	for _, t := range tones {
		if a.CueLen(t.cue) == 0 {
			a.Tone(t.cue, t.freq, cueLength)
		}
	}
}

// Exit stops the frame loop's input, tears the world down and frees GPU
// resources.
func (s *GlobeState) Exit() error {
	s.log.Info("exiting GlobeState")
	s.deps.Host.SetPointerLocked(false)
	s.deps.Host.SetInputAttached(false)
	if s.world != nil {
		s.world.Close()
	}
	s.release()
	for _, h := range []*texture.Handle{s.config.GlobeTexture, s.config.SkyTexture} {
		if h != nil {
			h.Delete()
		}
	}
	return nil
}

func (s *GlobeState) release() {
	for _, m := range s.meshes {
		m.Delete()
	}
	s.meshes = nil
}

// Resize updates the picking viewport.
func (s *GlobeState) Resize(width, height int) {
	if s.world == nil {
		return
	}
	s.world.SetViewport(world.Viewport{
		Width:      float32(width),
		Height:     float32(height),
		Projection: s.deps.Renderer.Projection(),
	})
}

// Update steps the world and reacts to its events.
func (s *GlobeState) Update(in *input.Snapshot, dt float64) error {
	if dt > 0 {
		// exponential moving average
		s.fps = 0.9*s.fps + 0.1/dt
	}

	if in.Triggered(input.ActionRelease) {
		if in.PointerLocked {
			s.deps.Host.SetPointerLocked(false)
		} else {
			s.deps.Host.Quit()
		}
	}
	if in.Triggered(input.ActionScreenshot) {
		s.shoot = true
	}

	ev := s.world.Step(in)
	if ev.LockPointer {
		s.deps.Host.SetPointerLocked(true)
	}
	switch {
	case ev.Marked:
		s.play(audio.CueSelect)
	case ev.Unmarked:
		s.play(audio.CueDeselect)
	}
	return nil
}

// Render draws the world, the HUD and takes a pending screenshot.
func (s *GlobeState) Render() error {
	r := s.deps.Renderer
	r.Begin(s.world.Camera().View(), s.world.Light().Position())
	s.world.Render(r)
	r.End()

	if s.config.ShowHUD && s.deps.Overlay != nil && s.deps.Formatter != nil {
		info := hud.Info{
			Mode:     s.world.Camera().Mode().String(),
			Hovered:  s.world.Hovered(),
			Selected: s.world.Selected(),
			Bodies:   len(s.world.Bodies()),
			Shot:     s.lastShot,
		}
		if s.config.ShowFPS {
			info.FPS = s.fps
		}
		s.deps.Overlay.SetLines(s.deps.Formatter.Lines(info))
		w, h := r.Size()
		s.deps.Overlay.Draw(w, h)
	}

	if s.shoot {
		s.shoot = false
		s.capture()
	}
	return nil
}

func (s *GlobeState) capture() {
	if s.deps.Screenshots == nil {
		return
	}
	pixels, w, h := s.deps.Renderer.ReadPixels()
	path, err := s.deps.Screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		s.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	s.lastShot = path
	s.log.Info("screenshot saved", zap.String("path", path))
	s.play(audio.CueShutter)
}

func (s *GlobeState) play(c audio.Cue) {
	if s.deps.Audio == nil {
		return
	}
	if err := s.deps.Audio.Play(c); err != nil {
		s.log.Debug("cue not played", zap.String("cue", string(c)), zap.Error(err))
	}
}

// World returns the running world, or nil before Enter.
func (s *GlobeState) World() *world.World {
	return s.world
}
