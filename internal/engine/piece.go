// Package engine provides chess rules: piece move generation, move
// application on immutable boards, legality filtering and game status.
package engine

import (
	"fmt"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
)

// Piece is an immutable chess piece: its type, alliance, coordinate and
// whether it has yet to move. The type is a closed tag; behaviour that
// differs per type (move generation, location value) switches on it.
//
// Two pieces are equal (==) when all four fields match.
type Piece struct {
	kind      chess.PieceType
	alliance  chess.Alliance
	coord     chess.Coordinate
	firstMove bool
}

// NewPiece creates a piece. It rejects the Empty type and unknown types.
func NewPiece(kind chess.PieceType, alliance chess.Alliance, coord chess.Coordinate, firstMove bool) (Piece, error) {
	if kind <= chess.Empty || kind >= chess.NumPieceTypes {
		return Piece{}, fmt.Errorf("piece type %d: %w", kind, errors.ErrInvalidPosition)
	}
	return Piece{kind: kind, alliance: alliance, coord: coord, firstMove: firstMove}, nil
}

// NewPieceAt creates a piece from raw file and rank values, rejecting
// coordinates outside the board.
func NewPieceAt(kind chess.PieceType, alliance chess.Alliance, file, rank int, firstMove bool) (Piece, error) {
	coord, err := chess.NewCoordinate(file, rank)
	if err != nil {
		return Piece{}, fmt.Errorf("%v piece: %w", kind, err)
	}
	return NewPiece(kind, alliance, coord, firstMove)
}

// MustPiece is like NewPieceAt but panics on invalid input. Use it for
// positions fixed in source code.
func MustPiece(kind chess.PieceType, alliance chess.Alliance, file, rank int, firstMove bool) Piece {
	p, err := NewPieceAt(kind, alliance, file, rank, firstMove)
	if err != nil {
		panic(err)
	}
	return p
}

// Type returns the piece type.
func (p Piece) Type() chess.PieceType { return p.kind }

// Alliance returns the side the piece belongs to.
func (p Piece) Alliance() chess.Alliance { return p.alliance }

// Coordinate returns the square the piece stands on.
func (p Piece) Coordinate() chess.Coordinate { return p.coord }

// IsFirstMove reports whether the piece has not moved yet.
func (p Piece) IsFirstMove() bool { return p.firstMove }

// Value returns the material value of the piece.
func (p Piece) Value() int { return p.kind.Value() }

// Letter returns the piece letter, upper case for White.
func (p Piece) Letter() byte { return chess.PieceLetter(p.kind, p.alliance) }

// String returns the piece letter followed by its square, e.g. "Ng1".
func (p Piece) String() string {
	if p.isNone() {
		return "-"
	}
	return fmt.Sprintf("%c%s", p.Letter(), p.coord)
}

func (p Piece) isNone() bool {
	return p.kind == chess.Empty
}

// CalculateMoves returns every board-geometrically legal move of the piece.
// Moves that would leave the piece's own king in check are still included;
// Player filters those out.
func (p Piece) CalculateMoves(b *Board) []Move {
	switch p.kind {
	case chess.Pawn:
		return p.pawnMoves(b)
	case chess.Knight:
		return p.leaperMoves(b, knightOffsets)
	case chess.Bishop:
		return p.slidingMoves(b, diagonalDirs)
	case chess.Rook:
		return p.slidingMoves(b, straightDirs)
	case chess.Queen:
		return p.slidingMoves(b, queenDirs)
	case chess.King:
		return append(p.leaperMoves(b, kingOffsets), p.castleMoves(b)...)
	}
	return nil
}

// MovePiece returns the copy of the piece that results from executing m:
// relocated to the destination, first-move flag cleared, and for
// promotions replaced by the promotion piece.
func (p Piece) MovePiece(m Move) Piece {
	moved := Piece{kind: p.kind, alliance: p.alliance, coord: m.dest}
	if m.kind == Promotion {
		moved.kind = m.promoteTo
	}
	return moved
}

// relocate returns the piece on a new square with the first-move flag cleared.
func (p Piece) relocate(to chess.Coordinate) Piece {
	return Piece{kind: p.kind, alliance: p.alliance, coord: to}
}
