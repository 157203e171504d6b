package engine

import "github.com/lgbarn/chessai-go/internal/chess"

// Outcome classifies a position for the side to move.
type Outcome int

const (
	InProgress Outcome = iota
	Checkmate
	Stalemate
	InsufficientMaterial
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "unknown"
}

// IsDraw reports whether the outcome ends the game without a winner.
func (o Outcome) IsDraw() bool {
	return o == Stalemate || o == InsufficientMaterial
}

// GameOutcome returns the outcome of b for the side to move. Checkmate and
// stalemate take precedence over insufficient material.
func GameOutcome(b *Board) Outcome {
	p := b.CurrentPlayer()
	switch {
	case p.IsInCheckmate():
		return Checkmate
	case p.IsInStalemate():
		return Stalemate
	case HasInsufficientMaterial(b):
		return InsufficientMaterial
	}
	return InProgress
}

// HasInsufficientMaterial returns true if neither side can deliver mate:
// K vs K, K+B vs K, K+N vs K, and K+B vs K+B with bishops on the same colour.
func HasInsufficientMaterial(b *Board) bool {
	var minor [2][]Piece
	for _, a := range []chess.Alliance{chess.White, chess.Black} {
		for _, p := range b.pieceList(a) {
			switch p.kind {
			case chess.King:
				continue
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			}
			minor[a] = append(minor[a], p)
		}
	}
	white, black := minor[chess.White], minor[chess.Black]

	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white) == 0 && len(black) == 1, len(black) == 0 && len(white) == 1:
		return true
	case len(white) == 1 && len(black) == 1:
		w, bl := white[0], black[0]
		return w.kind == chess.Bishop && bl.kind == chess.Bishop && w.coord.IsLight() == bl.coord.IsLight()
	}
	return false
}
