package game

import (
	"testing"

	"github.com/Faultbox/neowatch/internal/config"
)

func TestWorldOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Distance = 7
	cfg.Camera.LookSensitivity = 0.01
	cfg.Scene.MaxBodies = 12
	cfg.Scene.Decay = 0.05
	cfg.Scene.Threshold = 0.3
	cfg.Scene.EmitInterval = 9
	cfg.Scene.Seed = 99

	opts := WorldOptions(cfg)
	if opts.CameraDistance != 7 || opts.Controls.LookSensitivity != 0.01 {
		t.Errorf("camera settings not mapped: %+v", opts.Controls)
	}
	if opts.MaxBodies != 12 || opts.EmitInterval != 9 || opts.Seed != 99 {
		t.Errorf("scene settings not mapped: %+v", opts)
	}
	if opts.Decay != 0.05 || opts.Threshold != 0.3 {
		t.Errorf("particle settings = %v/%v", opts.Decay, opts.Threshold)
	}
	if opts.SunTime.IsZero() {
		t.Error("sun time not set")
	}
	if opts.PickRadius <= 0 || opts.HighlightRate <= 0 {
		t.Error("defaults lost")
	}
}
