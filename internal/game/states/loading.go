package states

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/neowatch/internal/engine/input"
	"github.com/Faultbox/neowatch/internal/engine/texture"
	"github.com/Faultbox/neowatch/internal/feed"
	"github.com/Faultbox/neowatch/internal/logger"
)

// Screen draws a plain text frame.
type Screen interface {
	Text(lines []string)
}

// LoadingConfig contains configuration for the loading state.
type LoadingConfig struct {
	FeedPath       string
	Textures       []texture.Request
	TextureOptions texture.Options
	Timeout        time.Duration

	// Next builds the state entered once loading finishes.
	Next func(records []feed.Record) State
}

type feedResult struct {
	feed *feed.Feed
	err  error
}

// LoadingState reads the feed cache and decodes textures in the background.
// The next state is entered once both finish or the timeout expires. A feed
// failure is logged and the next state starts with no records.
type LoadingState struct {
	config  LoadingConfig
	manager *Manager
	screen  Screen
	log     *zap.Logger

	cancel  context.CancelFunc
	batch   *texture.Batch
	feedCh  chan feedResult
	records []feed.Record

	feedDone     bool
	texturesDone bool
	started      time.Time

	StatusMsg string
	ErrorMsg  string
}

// NewLoadingState creates a new loading state. screen may be nil.
func NewLoadingState(cfg LoadingConfig, manager *Manager, screen Screen) *LoadingState {
	return &LoadingState{
		config:    cfg,
		manager:   manager,
		screen:    screen,
		log:       logger.Named("loading"),
		StatusMsg: "Loading...",
	}
}

// Enter starts the background work.
func (s *LoadingState) Enter() error {
	s.started = time.Now()
	s.ErrorMsg = ""
	s.feedDone, s.texturesDone = false, false

	s.log.Info("entering LoadingState",
		zap.String("feed", s.config.FeedPath),
		zap.Int("textures", len(s.config.Textures)))

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.batch = texture.Load(ctx, s.config.Textures, s.config.TextureOptions)

	s.feedCh = make(chan feedResult, 1)
	if s.config.FeedPath == "" {
		s.feedCh <- feedResult{err: errors.New("no feed path configured")}
	} else {
		go func(path string) {
			f, err := feed.Load(path)
			s.feedCh <- feedResult{feed: f, err: err}
		}(s.config.FeedPath)
	}
	return nil
}

// Exit stops any decode still running.
func (s *LoadingState) Exit() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// Update polls the background work and moves on when it is finished.
func (s *LoadingState) Update(_ *input.Snapshot, _ float64) error {
	if !s.feedDone {
		select {
		case r := <-s.feedCh:
			s.feedDone = true
			s.onFeed(r)
		default:
		}
	}
	if !s.texturesDone {
		select {
		case <-s.batch.Done():
			s.texturesDone = true
		default:
		}
	}

	if s.Done() {
		s.finish()
		return nil
	}
	if s.config.Timeout > 0 && time.Since(s.started) > s.config.Timeout {
		s.log.Warn("loading timed out", zap.Duration("timeout", s.config.Timeout),
			zap.Bool("feed", s.feedDone), zap.Bool("textures", s.texturesDone))
		s.cancel()
		s.finish()
	}
	return nil
}

func (s *LoadingState) onFeed(r feedResult) {
	if r.err != nil {
		s.ErrorMsg = fmt.Sprintf("feed unavailable: %v", r.err)
		s.log.Warn("feed unavailable, starting without bodies", zap.Error(r.err))
		return
	}
	s.records = r.feed.Records
	s.log.Info("feed loaded",
		zap.Int("records", len(r.feed.Records)),
		zap.Int("skipped", r.feed.Skipped),
		zap.Time("fetched", r.feed.Fetched))
}

func (s *LoadingState) finish() {
	s.StatusMsg = "Ready"
	s.log.Info("loading finished", zap.Duration("elapsed", time.Since(s.started)))
	s.manager.Change(s.config.Next(s.records))
}

// Done reports whether both the feed and the textures have finished.
func (s *LoadingState) Done() bool {
	return s.feedDone && s.texturesDone
}

// Records returns the loaded feed records.
func (s *LoadingState) Records() []feed.Record {
	return s.records
}

// Render shows the loading status.
func (s *LoadingState) Render() error {
	if s.screen == nil {
		return nil
	}
	lines := []string{s.StatusMsg}
	if s.feedDone {
		lines = append(lines, fmt.Sprintf("feed: %d records", len(s.records)))
	}
	if s.ErrorMsg != "" {
		lines = append(lines, s.ErrorMsg)
	}
	s.screen.Text(lines)
	return nil
}
