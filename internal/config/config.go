// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Audio    AudioConfig    `yaml:"audio"`
	HUD      HUDConfig      `yaml:"hud"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
}

// CameraConfig holds camera and light control settings.
type CameraConfig struct {
	Distance         float32 `yaml:"distance"` // globe radii
	MoveSpeed        float32 `yaml:"move_speed"`
	LookSensitivity  float32 `yaml:"look_sensitivity"` // radians per pixel
	RollSpeed        float32 `yaml:"roll_speed"`
	LightSensitivity float32 `yaml:"light_sensitivity"` // degrees per pixel
}

// SceneConfig holds feed and scene content settings.
type SceneConfig struct {
	FeedPath     string        `yaml:"feed_path"`
	GlobeTexture string        `yaml:"globe_texture"`
	SkyTexture   string        `yaml:"sky_texture"`
	TextureSize  int           `yaml:"texture_size"` // longest side after decode, 0 keeps the original
	Workers      int           `yaml:"workers"`
	LoadTimeout  time.Duration `yaml:"load_timeout"`
	MaxBodies    int           `yaml:"max_bodies"`
	Decay        float64       `yaml:"particle_decay"`
	Threshold    float64       `yaml:"particle_threshold"`
	EmitInterval int           `yaml:"emit_interval"` // frames
	Seed         uint64        `yaml:"seed"`
}

// AudioConfig holds audio cue settings.
type AudioConfig struct {
	CueFile string  `yaml:"cue_file"` // WAV; empty uses synthesized tones
	Volume  float64 `yaml:"volume"`
	Muted   bool    `yaml:"muted"`
}

// HUDConfig holds overlay settings.
type HUDConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
	ShowFPS  bool   `yaml:"show_fps"`
}

// DebugConfig holds debug capture settings.
type DebugConfig struct {
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // webp or png
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        45,
		},
		Camera: CameraConfig{
			Distance:         4,
			MoveSpeed:        0.02,
			LookSensitivity:  0.003,
			RollSpeed:        0.02,
			LightSensitivity: 0.25,
		},
		Scene: SceneConfig{
			FeedPath:     "feed.yaml",
			GlobeTexture: "assets/earth.jpg",
			SkyTexture:   "assets/stars.jpg",
			TextureSize:  4096,
			Workers:      2,
			LoadTimeout:  30 * time.Second,
			MaxBodies:    64,
			Decay:        0.01,
			Threshold:    0.2,
			EmitInterval: 6,
			Seed:         1,
		},
		Audio: AudioConfig{
			Volume: 0.6,
		},
		HUD: HUDConfig{
			Enabled:  true,
			Language: "en",
		},
		Debug: DebugConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "webp",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov %v out of range", c.Graphics.FOV))
	}
	if c.Camera.Distance <= 1 {
		errs = append(errs, fmt.Errorf("camera: distance %v inside the globe", c.Camera.Distance))
	}
	if c.Scene.Decay <= 0 {
		errs = append(errs, fmt.Errorf("scene: particle decay must be positive"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume %v out of range", c.Audio.Volume))
	}
	return errors.Join(errs...)
}
