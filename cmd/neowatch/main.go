// Command neowatch shows the cached close-approach feed as bodies orbiting
// a sun-lit globe.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/neowatch/internal/config"
	"github.com/Faultbox/neowatch/internal/game"
	"github.com/Faultbox/neowatch/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "neowatch: %v\n", err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "neowatch: logger: %v\n", err)
		os.Exit(1)
	}

	code := 0
	if err := run(cfg); err != nil {
		logger.Error("neowatch stopped", zap.Error(err))
		code = 1
	}
	logger.Sync()
	os.Exit(code)
}

// run owns the session so that deferred teardown happens before exit.
func run(cfg *config.Config) error {
	logger.Info("neowatch starting",
		zap.String("feed", cfg.Scene.FeedPath),
		zap.String("config_dir", config.ConfigDir()),
	)
	logger.Sugar.Debugf("effective config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		return err
	}
	logger.Info("session ended")
	return nil
}
