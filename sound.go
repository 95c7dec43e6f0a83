package tilecore

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownSound is returned when playing a name that was never loaded.
	ErrUnknownSound = errors.New("tilecore: unknown sound")
	// ErrSoundNotInitialized is returned when playing before Init.
	ErrSoundNotInitialized = errors.New("tilecore: sound not initialized")
)

const soundSampleRate = beep.SampleRate(44100)

// SoundManager owns decoded sound effects and the music track. It has an
// explicit lifecycle: Load sounds at setup, Init before the loop starts and
// Shutdown when the game ends. Nothing reaches it implicitly; hand it to the
// objects that make noise, e.g. as PlayerConfig.Sounds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sounds      map[string]*beep.Buffer
	music       *beep.Ctrl
	musicName   string
	sfxVolume   float64
	musicVolume float64
	muted       bool
	initialized bool
}

// NewSoundManager creates a manager with full volumes.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:       &beep.Mixer{},
		sounds:      make(map[string]*beep.Buffer),
		sfxVolume:   1,
		musicVolume: 0.6,
	}
}

// Init opens the audio device. Calling it again is a no-op.
func (m *SoundManager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(soundSampleRate, soundSampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	Log.WithField("sounds", len(m.sounds)).Info("audio initialized")
	return nil
}

// Shutdown silences everything. The manager can be re-initialized.
func (m *SoundManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.music = nil
	m.musicName = ""
	m.initialized = false
}

// Load decodes a WAV file from fsys and stores it under name.
func (m *SoundManager) Load(name string, fsys fs.FS, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open sound %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("decode sound %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != soundSampleRate {
		s = beep.Resample(4, format.SampleRate, soundSampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: soundSampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read sound %s: %w", path, err)
	}

	m.store(name, buf)
	Log.WithFields(logrus.Fields{
		"sound":   name,
		"path":    path,
		"samples": buf.Len(),
	}).Debug("sound loaded")
	return nil
}

// AddTone synthesizes a sine beep of freq Hz and stores it under name. Games
// without audio assets use it for placeholder effects.
func (m *SoundManager) AddTone(name string, freq float64, d time.Duration) error {
	sine, err := generators.SineTone(soundSampleRate, freq)
	if err != nil {
		return fmt.Errorf("tone %s: %w", name, err)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: soundSampleRate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(soundSampleRate.N(d), sine))
	m.store(name, buf)
	return nil
}

func (m *SoundManager) store(name string, buf *beep.Buffer) {
	m.mu.Lock()
	m.sounds[name] = buf
	m.mu.Unlock()
}

// Has reports whether a sound is loaded under name.
func (m *SoundManager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sounds[name]
	return ok
}

// Play implements SoundPlayer. Failures are logged, not returned.
func (m *SoundManager) Play(name string) {
	if err := m.PlaySound(name); err != nil && !errors.Is(err, ErrSoundNotInitialized) {
		Log.WithError(err).WithField("sound", name).Warn("play sound")
	}
}

// PlaySound starts a one-shot effect.
func (m *SoundManager) PlaySound(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSound, name)
	}
	if !m.initialized {
		return ErrSoundNotInitialized
	}
	if m.muted {
		return nil
	}
	m.add(volume(buf.Streamer(0, buf.Len()), m.sfxVolume))
	return nil
}

// PlayMusic loops the named sound as background music, replacing the current
// track.
func (m *SoundManager) PlayMusic(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSound, name)
	}
	if !m.initialized {
		return ErrSoundNotInitialized
	}
	m.stopMusicLocked()
	ctrl := &beep.Ctrl{
		Streamer: volume(beep.Loop(-1, buf.Streamer(0, buf.Len())), m.musicVolume),
		Paused:   m.muted,
	}
	m.music = ctrl
	m.musicName = name
	m.add(ctrl)
	return nil
}

// StopMusic stops the background track.
func (m *SoundManager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicLocked()
}

func (m *SoundManager) stopMusicLocked() {
	if m.music == nil {
		return
	}
	speaker.Lock()
	// A Ctrl without a streamer reports itself drained and leaves the mixer.
	m.music.Streamer = nil
	speaker.Unlock()
	m.music = nil
	m.musicName = ""
}

// Music returns the name of the playing track, or "".
func (m *SoundManager) Music() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.musicName
}

// SetVolumes sets effect and music volume in [0, 1]. Music volume applies
// from the next PlayMusic.
func (m *SoundManager) SetVolumes(sfx, music float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolume = clamp01(sfx)
	m.musicVolume = clamp01(music)
}

// Volumes returns effect and music volume.
func (m *SoundManager) Volumes() (sfx, music float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sfxVolume, m.musicVolume
}

// SetMuted silences new effects and pauses the music.
func (m *SoundManager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	if m.music != nil {
		speaker.Lock()
		m.music.Paused = muted
		speaker.Unlock()
	}
}

// Muted reports whether sound is muted.
func (m *SoundManager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// volume scales s by a linear factor in [0, 1].
func volume(s beep.Streamer, v float64) *effects.Volume {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v), Silent: false}
}
