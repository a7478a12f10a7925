// Package audio plays the one-shot sound effects props trigger when they open
// and close.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrUnknownClip    = errors.New("unknown clip")
)

// Manager holds decoded clips by handle and mixes them onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	muted       bool

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	clips map[string]*beep.Buffer

	// mixer lets several clips overlap
	mixer *beep.Mixer
	log   *zap.Logger
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		clips:        make(map[string]*beep.Buffer),
		mixer:        &beep.Mixer{},
		log:          logger.For("audio"),
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
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

// SetMuted silences every later PlayOnce.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports whether playback is muted.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// withGain scales s by a linear 0-1 gain. beep applies Base^Volume, so the
// exponent is log2 of the gain.
func withGain(s beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Register decodes WAV data and stores it under handle, replacing any
// previous clip with the same handle.
func (m *Manager) Register(handle string, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode wav %q: %w", handle, err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  m.sampleRate,
		NumChannels: 2,
		Precision:   2,
	})
	buf.Append(resampled)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read wav %q: %w", handle, err)
	}

	m.clips[handle] = buf
	return nil
}

// LoadFile reads a WAV file from disk and registers it under handle.
func (m *Manager) LoadFile(handle, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read clip %q: %w", handle, err)
	}
	return m.Register(handle, data)
}

// ClipSource reads clip files by path.
type ClipSource interface {
	Load(path string) ([]byte, error)
}

// LoadClips loads every handle -> path pair from src. Clips that fail to
// load are logged and skipped; the joined errors are returned.
func (m *Manager) LoadClips(src ClipSource, paths map[string]string) error {
	var errs []error
	for handle, path := range paths {
		data, err := src.Load(path)
		if err == nil {
			err = m.Register(handle, data)
		}
		if err != nil {
			err = fmt.Errorf("clip %q: %w", handle, err)
			m.log.Warn("clip not loaded", zap.String("clip", handle), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		m.log.Debug("clip loaded", zap.String("clip", handle), zap.String("path", path))
	}
	return errors.Join(errs...)
}

// HasClip reports whether a clip is registered under handle.
func (m *Manager) HasClip(handle string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clips[handle]
	return ok
}

// Clips returns the registered handles in sorted order.
func (m *Manager) Clips() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	handles := make([]string, 0, len(m.clips))
	for h := range m.clips {
		handles = append(handles, h)
	}
	sort.Strings(handles)
	return handles
}

// PlaySFX starts the clip registered under handle.
func (m *Manager) PlaySFX(handle string) error {
	m.mu.RLock()
	buf, ok := m.clips[handle]
	initialized := m.initialized
	muted := m.muted
	sfxVol := m.masterVolume * m.sfxVolLevel
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClip, handle)
	}
	if muted {
		return nil
	}
	if !initialized {
		return ErrNotInitialized
	}

	vol := withGain(buf.Streamer(0, buf.Len()), sfxVol)

	speaker.Lock()
	m.mixer.Add(vol)
	speaker.Unlock()

	return nil
}

// PlayOnce plays a clip and only logs failures, so a missing clip never
// interrupts a prop.
func (m *Manager) PlayOnce(handle string) {
	if err := m.PlaySFX(handle); err != nil {
		m.log.Warn("clip not played", zap.String("clip", handle), zap.Error(err))
	}
}
