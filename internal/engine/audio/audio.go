// Package audio plays named sound effects through beep.
//
// Effects are decoded once into memory buffers at load time. Sounds whose
// WAV file is missing are replaced by a short synthesized tone so the game
// stays audible with an empty data directory. When the speaker cannot be
// opened the manager stays silent and Play becomes a no-op.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/game/sfx"
	"github.com/Faultbox/wolfcast/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// fallbackTones are synthesized when an effect has no WAV file.
var fallbackTones = map[string]struct {
	freq float64
	dur  time.Duration
}{
	sfx.Door:     {110, 300 * time.Millisecond},
	sfx.Pistol:   {880, 60 * time.Millisecond},
	sfx.Pickup:   {1320, 80 * time.Millisecond},
	sfx.Pain:     {220, 120 * time.Millisecond},
	sfx.Death:    {140, 400 * time.Millisecond},
	sfx.Step:     {70, 40 * time.Millisecond},
	sfx.Greeting: {440, 200 * time.Millisecond},
	sfx.Alert:    {660, 150 * time.Millisecond},
}

// Loader reads raw asset bytes by path.
type Loader interface {
	Load(path string) ([]byte, error)
}

// Manager handles sound effect playback for the game.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	sounds      map[string]*beep.Buffer

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	play func(beep.Streamer)
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		sounds:       make(map[string]*beep.Buffer),
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		play:         func(s beep.Streamer) { speaker.Play(s) },
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.initialized = true
	logger.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops playback and releases the speaker.
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

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// LoadSounds decodes sounds/<name>.wav for every name through loader.
// Missing or undecodable files get a synthesized fallback.
func (m *Manager) LoadSounds(loader Loader, names []string) {
	for _, name := range names {
		buf, err := m.decode(loader, name)
		if err != nil {
			logger.Warn("sound unavailable, using tone",
				zap.String("sound", name),
				zap.Error(err),
			)
			buf = m.tone(name)
		}

		m.mu.Lock()
		m.sounds[name] = buf
		m.mu.Unlock()
	}
	logger.Debug("sounds loaded", zap.Int("count", len(names)))
}

func (m *Manager) decode(loader Loader, name string) (*beep.Buffer, error) {
	data, err := loader.Load("sounds/" + name + ".wav")
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("stream wav: %w", err)
	}
	return buf, nil
}

func (m *Manager) tone(name string) *beep.Buffer {
	spec, ok := fallbackTones[name]
	if !ok {
		spec = fallbackTones[sfx.Pickup]
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	sine, err := generators.SineTone(m.sampleRate, spec.freq)
	if err != nil {
		return buf
	}
	buf.Append(&effects.Volume{
		Streamer: beep.Take(m.sampleRate.N(spec.dur), sine),
		Base:     2,
		Volume:   -2,
	})
	return buf
}

// Has reports whether name has a loaded buffer.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sounds[name]
	return ok
}

// Play starts a sound effect. Unknown names and a closed or muted speaker
// are ignored.
func (m *Manager) Play(name string) {
	m.mu.RLock()
	buf, ok := m.sounds[name]
	active := m.initialized && !m.muted
	vol := m.masterVolume * m.sfxVolLevel
	m.mu.RUnlock()

	if !ok || !active || vol <= 0 {
		return
	}

	m.play(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToExp(vol),
	})
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences all effects.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
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

// volumeToExp converts a linear 0-1 gain into the base-2 exponent used by
// effects.Volume: 1 -> 0, 0.5 -> -1, 0.25 -> -2.
func volumeToExp(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
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
