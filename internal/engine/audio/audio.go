// Package audio plays short interface cues.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/neowatch/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Cue names a preloaded sound.
type Cue string

const (
	CueSelect   Cue = "select"
	CueDeselect Cue = "deselect"
	CueShutter  Cue = "shutter"
)

// Manager mixes cues onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer

	volume float64 // 0.0 to 1.0
	muted  bool

	cues map[Cue]*beep.Buffer
	log  *zap.Logger
}

// New creates a manager. Cues can be loaded before Init.
func New(volume float64, muted bool) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		mixer:      &beep.Mixer{},
		volume:     clamp(volume, 0, 1),
		muted:      muted,
		cues:       make(map[Cue]*beep.Buffer),
		log:        logger.Named("audio"),
	}
}

// Init opens the speaker and starts the mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// SetMuted silences or restores cues.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports whether cues are silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// LoadCue decodes WAV data, resamples it to the output rate and stores it.
func (m *Manager) LoadCue(c Cue, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)

	m.mu.Lock()
	m.cues[c] = buf
	m.mu.Unlock()
	return nil
}

// Tone stores a synthesized sine blip as cue c.
func (m *Manager) Tone(c Cue, freq float64, d time.Duration) {
	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(tone(m.sampleRate, freq, m.sampleRate.N(d)))

	m.mu.Lock()
	m.cues[c] = buf
	m.mu.Unlock()
}

// CueLen returns the length of a loaded cue in samples, or 0.
func (m *Manager) CueLen(c Cue) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.cues[c]; ok {
		return b.Len()
	}
	return 0
}

// Play mixes cue c in. Unknown cues and muted playback are no-ops.
func (m *Manager) Play(c Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.volume
	muted := m.muted
	buf := m.cues[c]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if muted || vol <= 0 || buf == nil {
		return nil
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToDb(vol) / 6,
	})
	speaker.Unlock()
	return nil
}

// tone returns n samples of a sine wave with a linear fade out.
func tone(sr beep.SampleRate, freq float64, n int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		k := 0
		for k < len(samples) && pos < n {
			env := 1 - float64(pos)/float64(n)
			v := 0.5 * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[k] = [2]float64{v, v}
			k++
			pos++
		}
		return k, true
	})
}

// volumeToDb converts a 0-1 volume to decibels: 1 is 0 dB, 0.5 is about -6 dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
