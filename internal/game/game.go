// Package game implements the main loop and wires the engine together.
package game

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/neowatch/internal/config"
	"github.com/Faultbox/neowatch/internal/engine/audio"
	"github.com/Faultbox/neowatch/internal/engine/debug"
	"github.com/Faultbox/neowatch/internal/engine/hud"
	"github.com/Faultbox/neowatch/internal/engine/input"
	"github.com/Faultbox/neowatch/internal/engine/renderer"
	"github.com/Faultbox/neowatch/internal/engine/texture"
	"github.com/Faultbox/neowatch/internal/engine/window"
	"github.com/Faultbox/neowatch/internal/feed"
	"github.com/Faultbox/neowatch/internal/game/states"
	"github.com/Faultbox/neowatch/internal/game/world"
	"github.com/Faultbox/neowatch/internal/logger"
)

// Title is the window title.
const Title = "NeoWatch"

// Clip planes in globe radii.
const (
	nearPlane = 0.01
	farPlane  = 200
)

// Game is the application instance.
type Game struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	overlay  *hud.Overlay
	audio    *audio.Manager
	shots    *debug.ScreenshotCapture
	states   *states.Manager
}

// New creates the window, the renderer and the services, then schedules
// the loading state.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}
	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("feed", cfg.Scene.FeedPath),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  w,
		Height: h,
		FOV:    cfg.Graphics.FOV,
		Near:   nearPlane,
		Far:    farPlane,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	if cfg.HUD.Enabled {
		if g.overlay, err = hud.NewOverlay(); err != nil {
			g.log.Warn("HUD disabled", zap.Error(err))
		}
	}
	g.audio = newAudio(cfg.Audio, g.log)
	g.shots, err = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "neowatch", debug.Format(cfg.Debug.ScreenshotFormat))
	if err != nil {
		g.log.Warn("screenshots disabled", zap.Error(err))
	}

	g.states = states.NewManager()
	g.states.Change(g.loadingState())

	g.log.Info("initialized")
	return g, nil
}

// newAudio sets up cues. Failures leave cues silent.
func newAudio(cfg config.AudioConfig, log *zap.Logger) *audio.Manager {
	a := audio.New(cfg.Volume, cfg.Muted)
	if cfg.CueFile != "" {
		data, err := os.ReadFile(cfg.CueFile)
		if err == nil {
			err = a.LoadCue(audio.CueSelect, data)
		}
		if err != nil {
			log.Warn("cue file unavailable, using tones", zap.String("path", cfg.CueFile), zap.Error(err))
		}
	}
	if err := a.Init(); err != nil {
		log.Warn("audio unavailable", zap.Error(err))
	}
	return a
}

func (g *Game) loadingState() states.State {
	cfg := g.config
	globeTex := texture.NewHandle("earth")
	skyTex := texture.NewHandle("sky")

	var reqs []texture.Request
	if cfg.Scene.GlobeTexture != "" {
		reqs = append(reqs, texture.Request{Path: cfg.Scene.GlobeTexture, Handle: globeTex})
	}
	if cfg.Scene.SkyTexture != "" {
		reqs = append(reqs, texture.Request{Path: cfg.Scene.SkyTexture, Handle: skyTex})
	}

	globeCfg := states.GlobeConfig{
		World:        WorldOptions(cfg),
		GlobeTexture: globeTex,
		SkyTexture:   skyTex,
		ShowHUD:      cfg.HUD.Enabled,
		ShowFPS:      cfg.HUD.ShowFPS,
	}
	deps := states.GlobeDeps{
		Host:        g,
		Renderer:    g.renderer,
		Overlay:     g.overlay,
		Formatter:   hud.NewFormatter(cfg.HUD.Language),
		Audio:       g.audio,
		Screenshots: g.shots,
	}

	return states.NewLoadingState(states.LoadingConfig{
		FeedPath: cfg.Scene.FeedPath,
		Textures: reqs,
		TextureOptions: texture.Options{
			MaxSize: cfg.Scene.TextureSize,
			Workers: cfg.Scene.Workers,
		},
		Timeout: cfg.Scene.LoadTimeout,
		Next: func(records []feed.Record) states.State {
			return states.NewGlobeState(globeCfg, deps, records)
		},
	}, g.states, g)
}

// WorldOptions maps configuration onto world options.
func WorldOptions(cfg *config.Config) world.Options {
	opts := world.DefaultOptions()
	opts.MaxBodies = cfg.Scene.MaxBodies
	opts.Controls = world.Controls{
		MoveSpeed:        cfg.Camera.MoveSpeed,
		LookSensitivity:  cfg.Camera.LookSensitivity,
		RollSpeed:        cfg.Camera.RollSpeed,
		LightSensitivity: cfg.Camera.LightSensitivity,
	}
	opts.CameraDistance = cfg.Camera.Distance
	opts.Decay = cfg.Scene.Decay
	opts.Threshold = cfg.Scene.Threshold
	opts.EmitInterval = cfg.Scene.EmitInterval
	opts.Seed = cfg.Scene.Seed
	opts.SunTime = time.Now().UTC()
	return opts
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	g.log.Info("starting loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				w, h := g.window.DrawableSize()
				g.renderer.Resize(w, h)
				g.states.Resize(event.Width, event.Height)
			}
		}

		// 2. Update with one consistent input snapshot
		snap := g.input.Recorder.Snapshot()
		if err := g.states.Update(&snap, dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		if err := g.states.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 4. Present
		g.window.SwapBuffers()

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up resources in reverse order of creation.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.states != nil {
		if err := g.states.Close(); err != nil {
			g.log.Warn("state exit failed", zap.Error(err))
		}
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.overlay != nil {
		g.overlay.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// SetPointerLocked grabs or releases the mouse and tells the recorder.
func (g *Game) SetPointerLocked(locked bool) {
	g.window.SetPointerLocked(locked)
	g.input.Recorder.SetPointerLocked(locked)
}

// SetInputAttached starts or stops input recording.
func (g *Game) SetInputAttached(attached bool) {
	if attached {
		g.input.Recorder.Attach()
		return
	}
	g.input.Recorder.Detach()
}

// Quit ends the loop after the current frame.
func (g *Game) Quit() {
	g.running = false
}

// Size returns the window size in screen coordinates.
func (g *Game) Size() (int, int) {
	return g.window.GetSize()
}

// Text draws a frame holding only text.
func (g *Game) Text(lines []string) {
	g.renderer.Clear()
	if g.overlay == nil {
		return
	}
	g.overlay.SetLines(lines)
	w, h := g.renderer.Size()
	g.overlay.Draw(w, h)
}
