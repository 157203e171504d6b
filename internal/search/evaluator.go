package search

import (
	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/engine"
)

// Evaluator scores a position statically. Positive scores favour White.
// Implementations must be pure: equal boards get equal scores.
type Evaluator interface {
	Evaluate(b *engine.Board) int
}

// Weights are the tunable terms of StandardEvaluator.
type Weights struct {
	Check      int // Bonus for giving check
	Checkmate  int // Extra bonus when the check is mate
	Mobility   int // Per pseudo-legal move
	BishopPair int

	// EndgameMaterial is the non-pawn, non-king material (both sides
	// together) at or below which the endgame tables apply.
	EndgameMaterial int
}

// DefaultWeights returns the weights the engine plays with.
func DefaultWeights() Weights {
	return Weights{
		Check:           50,
		Checkmate:       10000,
		Mobility:        2,
		BishopPair:      40,
		EndgameMaterial: 2600,
	}
}

// StandardEvaluator sums material, location value, check and checkmate
// bonuses, mobility and the bishop pair for each side and returns White's
// total minus Black's.
type StandardEvaluator struct {
	Weights Weights
}

// NewStandardEvaluator creates an evaluator with DefaultWeights.
func NewStandardEvaluator() *StandardEvaluator {
	return &StandardEvaluator{Weights: DefaultWeights()}
}

// Evaluate implements Evaluator.
func (e *StandardEvaluator) Evaluate(b *engine.Board) int {
	endgame := IsEndgame(b, e.Weights.EndgameMaterial)
	return e.score(b, chess.White, endgame) - e.score(b, chess.Black, endgame)
}

func (e *StandardEvaluator) score(b *engine.Board, a chess.Alliance, endgame bool) int {
	w := e.Weights
	total := 0
	bishops := 0
	for _, p := range b.Pieces(a) {
		total += p.Value() + p.LocationValue(endgame)
		if p.Type() == chess.Bishop {
			bishops++
		}
	}
	if bishops >= 2 {
		total += w.BishopPair
	}

	total += w.Mobility * len(b.PseudoLegalMoves(a))

	opp := a.Opponent()
	if king, ok := b.King(opp); ok && b.IsAttacked(king.Coordinate(), a) {
		total += w.Check
		if !engine.HasLegalMoves(b, opp) {
			total += w.Checkmate
		}
	}
	return total
}

// IsEndgame reports whether the non-pawn, non-king material left on b is at
// most threshold.
func IsEndgame(b *engine.Board, threshold int) bool {
	material := 0
	for _, a := range []chess.Alliance{chess.White, chess.Black} {
		for _, p := range b.Pieces(a) {
			if t := p.Type(); t != chess.Pawn && t != chess.King {
				material += p.Value()
			}
		}
	}
	return material <= threshold
}
