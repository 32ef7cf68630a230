package config

import (
	"flag"
	"fmt"
	"os"
)

// Command-line overrides. Zero values leave the loaded setting alone.
var (
	flagConfig     = flag.String("config", "", "read settings from this YAML file instead of searching for one")
	flagDebug      = flag.Bool("debug", false, "log at debug level and show frame rate on the HUD")
	flagFeed       = flag.String("feed", "", "close-approach cache to load (overrides scene.feed_path)")
	flagWindowed   = flag.Bool("windowed", false, "force a window even if the config asks for fullscreen")
	flagFullscreen = flag.Bool("fullscreen", false, "force fullscreen")
	flagWidth      = flag.Int("width", 0, "window width in pixels")
	flagHeight     = flag.Int("height", 0, "window height in pixels")
)

// ParseFlags parses os.Args. main must call it before Load.
func ParseFlags() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(out, "Settings come from defaults, then config.yaml (or $%s), then these flags.\n\n", EnvConfig)
		flag.PrintDefaults()
	}
	flag.Parse()
}

// ConfigPath returns the -config value, or "" when unset.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags overlays command-line values on cfg.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.HUD.ShowFPS = true
	}
	if *flagFeed != "" {
		cfg.Scene.FeedPath = *flagFeed
	}
	switch {
	case *flagFullscreen:
		cfg.Graphics.Fullscreen = true
	case *flagWindowed:
		cfg.Graphics.Fullscreen = false
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
