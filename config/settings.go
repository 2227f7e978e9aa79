package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-arena-server/game"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"gopkg.in/yaml.v3"
)

// ErrConfig marks malformed game settings. Callers fall back to defaults.
var ErrConfig = errors.New("invalid game settings")

// Built-in game settings.
const (
	DefaultWorldSize     = 2000
	DefaultMSPerFrame    = 17
	DefaultFramesPerShot = 80
	DefaultRespawnRate   = 300
)

// Settings is the game layout and tuning loaded once at startup.
type Settings struct {
	WorldSize     int         // Side of the square world
	MSPerFrame    int         // Tick period in milliseconds
	FramesPerShot int         // Ticks between two main shots of one tank
	RespawnRate   int         // Ticks a dead tank waits before respawning
	Walls         []game.Wall // Static walls, ids assigned in file order
}

type pointEntry struct {
	X float64 `xml:"x" yaml:"x"`
	Y float64 `xml:"y" yaml:"y"`
}

type wallEntry struct {
	P1 *pointEntry `xml:"p1" yaml:"p1"`
	P2 *pointEntry `xml:"p2" yaml:"p2"`
}

// settingsFile mirrors both accepted layouts: the <GameSettings> XML document
// and its YAML equivalent.
type settingsFile struct {
	UniverseSize  int         `xml:"UniverseSize" yaml:"universe_size"`
	MSPerFrame    int         `xml:"MSPerFrame" yaml:"ms_per_frame"`
	FramesPerShot int         `xml:"FramesPerShot" yaml:"frames_per_shot"`
	RespawnRate   int         `xml:"RespawnRate" yaml:"respawn_rate"`
	Walls         []wallEntry `xml:"Wall" yaml:"walls"`
}

// DefaultSettings returns the built-in settings with no walls.
func DefaultSettings() Settings {
	return Settings{
		WorldSize:     DefaultWorldSize,
		MSPerFrame:    DefaultMSPerFrame,
		FramesPerShot: DefaultFramesPerShot,
		RespawnRate:   DefaultRespawnRate,
	}
}

// LoadSettings reads the settings file at path. Any problem is logged and the
// affected values are replaced by defaults; it never fails.
func LoadSettings(path string, logger general_i.Logger) Settings {
	if path == "" {
		logger.Info("no settings file given, using built-in settings")
		return DefaultSettings()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warning(fmt.Sprintf("reading settings file: %s, using built-in settings", err))
		return DefaultSettings()
	}

	s, defaulted, err := ParseSettings(data, filepath.Ext(path))
	if err != nil {
		logger.Warning(fmt.Sprintf("parsing settings file %s: %s, using built-in settings", path, err))
		return DefaultSettings()
	}
	for _, field := range defaulted {
		logger.Warning(fmt.Sprintf("settings field %s missing or invalid, using default", field))
	}

	logger.Info(fmt.Sprintf("loaded settings from %s: world %d, %d walls", path, s.WorldSize, len(s.Walls)))
	return s
}

// ParseSettings decodes a settings document. ext selects the format (".xml",
// ".yaml" or ".yml"). Non-positive scalars are replaced by defaults and their
// names returned in defaulted.
func ParseSettings(data []byte, ext string) (s Settings, defaulted []string, err error) {
	var f settingsFile
	switch strings.ToLower(ext) {
	case ".xml":
		err = xml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return Settings{}, nil, fmt.Errorf("%w: unsupported format %q", ErrConfig, ext)
	}
	if err != nil {
		return Settings{}, nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	s = DefaultSettings()
	pick := func(name string, v int, dst *int) {
		if v > 0 {
			*dst = v
			return
		}
		defaulted = append(defaulted, name)
	}
	pick("UniverseSize", f.UniverseSize, &s.WorldSize)
	pick("MSPerFrame", f.MSPerFrame, &s.MSPerFrame)
	pick("FramesPerShot", f.FramesPerShot, &s.FramesPerShot)
	pick("RespawnRate", f.RespawnRate, &s.RespawnRate)

	for i, w := range f.Walls {
		if w.P1 == nil || w.P2 == nil {
			return Settings{}, nil, fmt.Errorf("%w: wall %d is missing an endpoint", ErrConfig, i)
		}
		s.Walls = append(s.Walls, game.Wall{
			ID: len(s.Walls),
			P1: game.Vector2D{X: w.P1.X, Y: w.P1.Y},
			P2: game.Vector2D{X: w.P2.X, Y: w.P2.Y},
		})
	}
	return s, defaulted, nil
}

// TickPeriod is the wall-clock duration of one simulation step.
func (s Settings) TickPeriod() time.Duration {
	return time.Duration(s.MSPerFrame) * time.Millisecond
}

// GameConfig builds the world tuning from these settings.
func (s Settings) GameConfig() game.Config {
	c := game.DefaultConfig()
	c.Size = s.WorldSize
	c.FireRate = s.FramesPerShot
	c.RespawnDelay = s.RespawnRate
	return c
}
