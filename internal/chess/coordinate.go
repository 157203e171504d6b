package chess

import (
	"fmt"

	"github.com/lgbarn/chessai-go/internal/errors"
)

// Board dimensions. Every bounds check in the module derives from these.
const (
	BoardWidth  = 8
	BoardHeight = 8
	NumTiles    = BoardWidth * BoardHeight

	FileBase = 'a'
	RankBase = '1'
)

// Coordinate is an immutable (file, rank) pair. File 0 is the a-file and
// rank 0 is White's back rank. A Coordinate value is always on the board:
// the only ways to obtain one validate their input.
type Coordinate struct {
	file int
	rank int
}

// IsValidCoordinate reports whether (file, rank) lies on the board.
func IsValidCoordinate(file, rank int) bool {
	return file >= 0 && file < BoardWidth && rank >= 0 && rank < BoardHeight
}

// NewCoordinate returns the coordinate (file, rank), or ErrOutOfBounds.
func NewCoordinate(file, rank int) (Coordinate, error) {
	if !IsValidCoordinate(file, rank) {
		return Coordinate{}, fmt.Errorf("file %d, rank %d: %w", file, rank, errors.ErrOutOfBounds)
	}
	return Coordinate{file: file, rank: rank}, nil
}

// MustCoordinate is like NewCoordinate but panics on invalid input.
// Use it for coordinates fixed in source code.
func MustCoordinate(file, rank int) Coordinate {
	c, err := NewCoordinate(file, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// CoordinateFromIndex converts a tile index (rank*BoardWidth+file) to a Coordinate.
func CoordinateFromIndex(index int) (Coordinate, error) {
	if index < 0 || index >= NumTiles {
		return Coordinate{}, fmt.Errorf("tile index %d: %w", index, errors.ErrOutOfBounds)
	}
	return Coordinate{file: index % BoardWidth, rank: index / BoardWidth}, nil
}

// ParseCoordinate parses algebraic notation such as "e4".
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("square %q: %w", s, errors.ErrOutOfBounds)
	}
	file := int(s[0]) - FileBase
	var rank int
	if _, err := fmt.Sscanf(s[1:], "%d", &rank); err != nil {
		return Coordinate{}, fmt.Errorf("square %q: %w", s, errors.ErrOutOfBounds)
	}
	return NewCoordinate(file, rank-1)
}

// File returns the zero-based file.
func (c Coordinate) File() int { return c.file }

// Rank returns the zero-based rank.
func (c Coordinate) Rank() int { return c.rank }

// Index returns the tile index of the coordinate.
func (c Coordinate) Index() int {
	return c.rank*BoardWidth + c.file
}

// Step returns the coordinate offset by (df, dr) and whether it is on the board.
func (c Coordinate) Step(df, dr int) (Coordinate, bool) {
	f, r := c.file+df, c.rank+dr
	if !IsValidCoordinate(f, r) {
		return Coordinate{}, false
	}
	return Coordinate{file: f, rank: r}, true
}

// String returns algebraic notation, e.g. "e4".
func (c Coordinate) String() string {
	return fmt.Sprintf("%c%d", rune(FileBase+c.file), c.rank+1)
}

// IsLight reports whether the coordinate is a light square.
func (c Coordinate) IsLight() bool {
	return (c.file+c.rank)%2 == 1
}

// AllCoordinates returns every coordinate in tile-index order.
func AllCoordinates() []Coordinate {
	coords := make([]Coordinate, 0, NumTiles)
	for rank := 0; rank < BoardHeight; rank++ {
		for file := 0; file < BoardWidth; file++ {
			coords = append(coords, Coordinate{file: file, rank: rank})
		}
	}
	return coords
}
