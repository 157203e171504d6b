package engine

import (
	"encoding/json"
	"fmt"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
)

// PieceSnapshot is the serialised form of one piece.
type PieceSnapshot struct {
	Square    string `json:"square"`
	Type      string `json:"type"`     // "Pawn", "Knight", ...
	Alliance  string `json:"alliance"` // "White" or "Black"
	FirstMove bool   `json:"firstMove"`
}

// Snapshot is the serialised form of a board: the piece layout, the side to
// move and the en-passant pawn's square (null when there is none).
type Snapshot struct {
	Pieces    []PieceSnapshot `json:"pieces"`
	MoveMaker string          `json:"moveMaker"`
	EnPassant *string         `json:"enPassant"`
}

// Snapshot returns the serialisable form of the board.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Pieces:    make([]PieceSnapshot, 0, b.PieceCount()),
		MoveMaker: b.moveMaker.String(),
	}
	for _, list := range [2][]Piece{b.whitePieces, b.blackPieces} {
		for _, p := range list {
			s.Pieces = append(s.Pieces, PieceSnapshot{
				Square:    p.coord.String(),
				Type:      p.kind.String(),
				Alliance:  p.alliance.String(),
				FirstMove: p.firstMove,
			})
		}
	}
	if ep, ok := b.EnPassantPawn(); ok {
		square := ep.coord.String()
		s.EnPassant = &square
	}
	return s
}

// MarshalJSON encodes the board as its snapshot.
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Snapshot())
}

// FromSnapshot rebuilds and validates a board.
func FromSnapshot(s Snapshot) (*Board, error) {
	bl := NewBuilder()
	for _, ps := range s.Pieces {
		coord, err := chess.ParseCoordinate(ps.Square)
		if err != nil {
			return nil, &errors.PositionError{Err: err, Field: "pieces", Square: ps.Square}
		}
		kind, ok := parsePieceType(ps.Type)
		if !ok {
			return nil, &errors.PositionError{Err: errors.ErrInvalidPosition, Field: "type", Square: ps.Square, Got: ps.Type}
		}
		alliance, ok := chess.ParseAlliance(ps.Alliance)
		if !ok {
			return nil, &errors.PositionError{Err: errors.ErrInvalidPosition, Field: "alliance", Square: ps.Square, Got: ps.Alliance}
		}
		if !bl.tiles[coord.Index()].isNone() {
			return nil, &errors.PositionError{Err: errors.ErrInvalidPosition, Field: "pieces", Square: ps.Square, Got: "two pieces"}
		}
		bl.SetPiece(Piece{kind: kind, alliance: alliance, coord: coord, firstMove: ps.FirstMove})
	}

	moveMaker, ok := chess.ParseAlliance(s.MoveMaker)
	if !ok {
		return nil, &errors.PositionError{Err: errors.ErrInvalidPosition, Field: "moveMaker", Got: s.MoveMaker}
	}
	bl.SetMoveMaker(moveMaker)

	if s.EnPassant != nil {
		coord, err := chess.ParseCoordinate(*s.EnPassant)
		if err != nil {
			return nil, &errors.PositionError{Err: err, Field: "enPassant", Square: *s.EnPassant}
		}
		bl.SetEnPassantPawn(bl.tiles[coord.Index()])
		if bl.enPassant.isNone() {
			return nil, &errors.PositionError{Err: errors.ErrInvalidPosition, Field: "enPassant", Square: *s.EnPassant, Got: "empty square"}
		}
	}
	return bl.Build()
}

// UnmarshalBoard decodes a JSON snapshot into a board.
func UnmarshalBoard(data []byte) (*Board, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return FromSnapshot(s)
}

func parsePieceType(name string) (chess.PieceType, bool) {
	for t := chess.Pawn; t < chess.NumPieceTypes; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return chess.Empty, false
}
