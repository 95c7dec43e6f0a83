package tilecore

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidSettings is returned by Validate and the loaders for settings
// the engine cannot run with.
var ErrInvalidSettings = errors.New("tilecore: invalid settings")

// Settings is the game configuration, read once before the loop starts.
type Settings struct {
	Title        string `mapstructure:"title"`
	ScreenWidth  int    `mapstructure:"screen_width"`
	ScreenHeight int    `mapstructure:"screen_height"`
	FPS          int    `mapstructure:"fps"`
	Resizable    bool   `mapstructure:"resizable"`
	TileSize     int    `mapstructure:"tile_size"`
	Debug        bool   `mapstructure:"debug"`

	Map     MapSettings   `mapstructure:"map"`
	Player  PlayerSheet   `mapstructure:"player"`
	Physics Physics       `mapstructure:"physics"`
	Audio   AudioSettings `mapstructure:"audio"`

	ScreenshotDir string `mapstructure:"screenshot_dir"`
}

// MapSettings locates the map resources.
type MapSettings struct {
	Background string `mapstructure:"background"`
	Platform   string `mapstructure:"platform"`
	TileSheet  string `mapstructure:"tile_sheet"`
	// SheetTileSize is the tile size inside the sheet image, which may differ
	// from the on-screen TileSize.
	SheetTileSize int `mapstructure:"sheet_tile_size"`
}

// PlayerSheet locates the player's walk sheet.
type PlayerSheet struct {
	Sheet       string `mapstructure:"sheet"`
	FrameWidth  int    `mapstructure:"frame_width"`
	FrameHeight int    `mapstructure:"frame_height"`
}

// AudioSettings configures the SoundManager.
type AudioSettings struct {
	Enabled     bool    `mapstructure:"enabled"`
	SFXVolume   float64 `mapstructure:"sfx_volume"`
	MusicVolume float64 `mapstructure:"music_volume"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Title:        "Game",
		ScreenWidth:  800,
		ScreenHeight: 600,
		FPS:          DefaultFPS,
		TileSize:     16,
		Map: MapSettings{
			SheetTileSize: 16,
		},
		Player: PlayerSheet{
			FrameWidth:  defaultPlayerWidth,
			FrameHeight: defaultPlayerHeight,
		},
		Physics: DefaultPhysics,
		Audio: AudioSettings{
			Enabled:     true,
			SFXVolume:   1,
			MusicVolume: 0.6,
		},
		ScreenshotDir: "screenshots",
	}
}

// newViper returns a viper instance primed with DefaultSettings and TILECORE_
// environment overrides (e.g. TILECORE_PHYSICS_GRAVITY).
func newViper() *viper.Viper {
	d := DefaultSettings()
	v := viper.New()
	v.SetDefault("title", d.Title)
	v.SetDefault("screen_width", d.ScreenWidth)
	v.SetDefault("screen_height", d.ScreenHeight)
	v.SetDefault("fps", d.FPS)
	v.SetDefault("resizable", d.Resizable)
	v.SetDefault("tile_size", d.TileSize)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("map.background", d.Map.Background)
	v.SetDefault("map.platform", d.Map.Platform)
	v.SetDefault("map.tile_sheet", d.Map.TileSheet)
	v.SetDefault("map.sheet_tile_size", d.Map.SheetTileSize)
	v.SetDefault("player.sheet", d.Player.Sheet)
	v.SetDefault("player.frame_width", d.Player.FrameWidth)
	v.SetDefault("player.frame_height", d.Player.FrameHeight)
	v.SetDefault("physics.gravity", d.Physics.Gravity)
	v.SetDefault("physics.jump_impulse", d.Physics.JumpImpulse)
	v.SetDefault("physics.max_fall_speed", d.Physics.MaxFallSpeed)
	v.SetDefault("physics.move_speed", d.Physics.MoveSpeed)
	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.sfx_volume", d.Audio.SFXVolume)
	v.SetDefault("audio.music_volume", d.Audio.MusicVolume)
	v.SetDefault("screenshot_dir", d.ScreenshotDir)

	v.SetEnvPrefix("TILECORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads settings from a file; the format follows the extension.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return decodeSettings(v)
}

// ReadSettings reads settings of the given format ("yaml", "json", "toml")
// from r.
func ReadSettings(r io.Reader, format string) (*Settings, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return decodeSettings(v)
}

// EnvSettings returns the defaults with TILECORE_ environment overrides
// applied, for programs run without a settings file.
func EnvSettings() (*Settings, error) {
	return decodeSettings(newViper())
}

func decodeSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports the first setting the engine cannot run with.
func (s *Settings) Validate() error {
	switch {
	case s.ScreenWidth <= 0 || s.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidSettings, s.ScreenWidth, s.ScreenHeight)
	case s.FPS <= 0 || s.FPS > 1000:
		return fmt.Errorf("%w: fps %d", ErrInvalidSettings, s.FPS)
	case s.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidSettings, s.TileSize)
	case s.Physics.MaxFallSpeed < 0:
		return fmt.Errorf("%w: max fall speed %v", ErrInvalidSettings, s.Physics.MaxFallSpeed)
	}
	return nil
}

// LoopConfig returns a loop configuration running at the configured rate.
func (s *Settings) LoopConfig() LoopConfig {
	return LoopConfig{FPS: s.FPS}
}
