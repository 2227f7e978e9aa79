package config

import (
	"fmt"

	"github.com/beka-birhanu/vinom-arena-server/game"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	maze "github.com/beka-birhanu/wilson-maze"
)

// Maze layout limits. The generator allows at most 20 cells a side, and a
// cell must leave a tank room between its walls.
const (
	maxMazeCells = 20
	minMazeCell  = 3 * game.TankSize
)

// MazeWalls generates a cells x cells Wilson maze spread over a world of
// worldSize and returns every closed inner cell side as a wall, ids from 0 in
// row-major order. The outer border stays open since tanks wrap at the edge.
// cells is reduced when the world is too small for that many.
func MazeWalls(cells, worldSize int) ([]game.Wall, error) {
	cells = min(cells, maxMazeCells, int(float64(worldSize)/minMazeCell))
	if cells < 2 {
		return nil, fmt.Errorf("%w: world of %d has no room for a maze", ErrConfig, worldSize)
	}

	m, err := maze.New(cells, cells)
	if err != nil {
		return nil, fmt.Errorf("%w: generating maze: %v", ErrConfig, err)
	}
	wm, ok := m.(*maze.WillsonMaze)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected maze type %T", ErrConfig, m)
	}

	side := float64(worldSize) / float64(cells)
	at := func(i int) float64 { return -float64(worldSize)/2 + float64(i)*side }

	var walls []game.Wall
	add := func(p1, p2 game.Vector2D) {
		walls = append(walls, game.Wall{ID: len(walls), P1: p1, P2: p2})
	}
	for row, cellsInRow := range wm.RetriveGrid() {
		for col, cell := range cellsInRow {
			if col < cells-1 && cell.HasEastWall() {
				add(game.Vector2D{X: at(col + 1), Y: at(row)}, game.Vector2D{X: at(col + 1), Y: at(row + 1)})
			}
			if row < cells-1 && cell.HasSouthWall() {
				add(game.Vector2D{X: at(col), Y: at(row + 1)}, game.Vector2D{X: at(col + 1), Y: at(row + 1)})
			}
		}
	}
	return walls, nil
}

// WithMaze fills an empty wall list with a generated maze of cells per side.
// Settings that already carry walls, or cells <= 0, are returned unchanged. A
// maze that cannot be generated is logged and the settings kept wall-free.
func (s Settings) WithMaze(cells int, logger general_i.Logger) Settings {
	if cells <= 0 || len(s.Walls) > 0 {
		return s
	}
	walls, err := MazeWalls(cells, s.WorldSize)
	if err != nil {
		logger.Warning(fmt.Sprintf("building maze layout: %s, using no walls", err))
		return s
	}
	s.Walls = walls
	logger.Info(fmt.Sprintf("generated maze layout (%d requested cells a side) with %d walls", cells, len(walls)))
	return s
}
