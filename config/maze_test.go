package config

import (
	"os"
	"testing"

	"github.com/beka-birhanu/vinom-arena-server/game"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMazeWallsLeaveEveryCellSpawnable(t *testing.T) {
	tests := []struct {
		cells, worldSize, wantCells int
	}{
		{cells: 2, worldSize: 1000, wantCells: 2},
		{cells: 6, worldSize: 2000, wantCells: 6},
		{cells: 20, worldSize: 2000, wantCells: 11},
		{cells: 50, worldSize: 5000, wantCells: 20},
	}

	for _, tt := range tests {
		walls, err := MazeWalls(tt.cells, tt.worldSize)
		require.NoError(t, err)

		n := tt.wantCells
		assert.NotEmpty(t, walls)
		assert.LessOrEqual(t, len(walls), 2*n*(n-1), "only inner sides")

		half := float64(tt.worldSize) / 2
		side := float64(tt.worldSize) / float64(n)
		edge := half + 1e-6
		for i, w := range walls {
			assert.Equal(t, i, w.ID)
			for _, p := range []game.Vector2D{w.P1, w.P2} {
				assert.True(t, p.X >= -edge && p.X <= edge && p.Y >= -edge && p.Y <= edge, "wall %d outside world", i)
			}
		}

		for row := range n {
			for col := range n {
				centre := game.Vector2D{X: -half + (float64(col)+0.5)*side, Y: -half + (float64(row)+0.5)*side}
				for _, w := range walls {
					assert.False(t, w.BlocksTank(centre), "cell %d,%d blocked by wall %d", row, col, w.ID)
				}
			}
		}
	}
}

func TestMazeWallsRejectsTinyWorld(t *testing.T) {
	_, err := MazeWalls(5, 300)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = MazeWalls(1, 2000)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestMazeWorldPlacesTanks(t *testing.T) {
	walls, err := MazeWalls(6, 2000)
	require.NoError(t, err)

	c := game.DefaultConfig()
	c.Seed = 11
	w := game.NewWorld(c, walls)
	for id := range 10 {
		tank := w.AddTank(id, "p")
		for _, wall := range walls {
			assert.False(t, wall.BlocksTank(tank.Location))
		}
	}
}

func TestWithMaze(t *testing.T) {
	l, err := logger.New("TEST", ColorReset, os.Stdout)
	require.NoError(t, err)

	s := DefaultSettings().WithMaze(4, l)
	assert.NotEmpty(t, s.Walls)

	assert.Empty(t, DefaultSettings().WithMaze(0, l).Walls)

	own := DefaultSettings()
	own.Walls = []game.Wall{{ID: 0, P2: game.Vector2D{X: 10}}}
	assert.Equal(t, own.Walls, own.WithMaze(4, l).Walls, "file walls win")

	tiny := DefaultSettings()
	tiny.WorldSize = 100
	assert.Empty(t, tiny.WithMaze(4, l).Walls)
}
