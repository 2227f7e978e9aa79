package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-arena-server/game"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xmlSettings = `<?xml version="1.0" encoding="utf-8" ?>
<GameSettings>
  <UniverseSize>1200</UniverseSize>
  <MSPerFrame>20</MSPerFrame>
  <FramesPerShot>40</FramesPerShot>
  <RespawnRate>200</RespawnRate>
  <Wall>
    <p1><x>-575</x><y>-575</y></p1>
    <p2><x>-575</x><y>575</y></p2>
  </Wall>
  <Wall>
    <p1><x>-100</x><y>0</y></p1>
    <p2><x>100</x><y>0</y></p2>
  </Wall>
</GameSettings>`

const yamlSettings = `
universe_size: 900
ms_per_frame: 33
respawn_rate: 10
walls:
  - p1: {x: -100, y: 0}
    p2: {x: 100, y: 0}
`

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		ext       string
		want      Settings
		defaulted []string
	}{
		{
			name: "xml layout",
			data: xmlSettings,
			ext:  ".xml",
			want: Settings{
				WorldSize:     1200,
				MSPerFrame:    20,
				FramesPerShot: 40,
				RespawnRate:   200,
				Walls: []game.Wall{
					{ID: 0, P1: game.Vector2D{X: -575, Y: -575}, P2: game.Vector2D{X: -575, Y: 575}},
					{ID: 1, P1: game.Vector2D{X: -100, Y: 0}, P2: game.Vector2D{X: 100, Y: 0}},
				},
			},
		},
		{
			name: "yaml layout with a missing scalar",
			data: yamlSettings,
			ext:  ".YML",
			want: Settings{
				WorldSize:     900,
				MSPerFrame:    33,
				FramesPerShot: DefaultFramesPerShot,
				RespawnRate:   10,
				Walls: []game.Wall{
					{ID: 0, P1: game.Vector2D{X: -100, Y: 0}, P2: game.Vector2D{X: 100, Y: 0}},
				},
			},
			defaulted: []string{"FramesPerShot"},
		},
		{
			name: "negative values fall back",
			data: "<GameSettings><UniverseSize>-5</UniverseSize></GameSettings>",
			ext:  ".xml",
			want: DefaultSettings(),
			defaulted: []string{
				"UniverseSize", "MSPerFrame", "FramesPerShot", "RespawnRate",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defaulted, err := ParseSettings([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.defaulted, defaulted)
		})
	}
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{name: "unknown extension", data: xmlSettings, ext: ".ini"},
		{name: "broken xml", data: "<GameSettings><UniverseSize>", ext: ".xml"},
		{name: "wall without endpoint", data: "<GameSettings><Wall><p1><x>1</x><y>1</y></p1></Wall></GameSettings>", ext: ".xml"},
		{name: "broken yaml", data: "walls: [", ext: ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSettings([]byte(tt.data), tt.ext)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadSettingsFallsBackToDefaults(t *testing.T) {
	l, err := logger.New("TEST", ColorReset, os.Stdout)
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), LoadSettings("", l))
	assert.Equal(t, DefaultSettings(), LoadSettings(filepath.Join(t.TempDir(), "missing.xml"), l))

	broken := filepath.Join(t.TempDir(), "settings.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<GameSettings>"), 0o600))
	assert.Equal(t, DefaultSettings(), LoadSettings(broken, l))

	good := filepath.Join(t.TempDir(), "settings.xml")
	require.NoError(t, os.WriteFile(good, []byte(xmlSettings), 0o600))
	s := LoadSettings(good, l)
	assert.Equal(t, 1200, s.WorldSize)
	assert.Len(t, s.Walls, 2)
}

func TestSettingsConversions(t *testing.T) {
	s := DefaultSettings()
	s.MSPerFrame = 25
	s.FramesPerShot = 12
	s.RespawnRate = 7

	assert.Equal(t, 25*time.Millisecond, s.TickPeriod())

	c := s.GameConfig()
	assert.Equal(t, DefaultWorldSize, c.Size)
	assert.Equal(t, 12, c.FireRate)
	assert.Equal(t, 7, c.RespawnDelay)
	assert.Equal(t, game.DefaultConfig().TankHealth, c.TankHealth)
}
