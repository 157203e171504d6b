package search

import (
	"sort"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/engine"
)

// orderMoves sorts captures first, most valuable victim first and least
// valuable attacker second (MVV-LVA). Promotions follow captures of equal
// weight. The sort is stable, so quiet moves keep generation order.
func orderMoves(moves []engine.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moveWeight(moves[i]) > moveWeight(moves[j])
	})
}

func moveWeight(m engine.Move) int {
	w := 0
	if victim, ok := m.Captured(); ok {
		w += victim.Value()*10 - int(m.Piece().Type())
	}
	if m.Kind() == engine.Promotion {
		w += m.PromotionType().Value()
	}
	return w
}

// captures returns the capturing moves of moves, preserving order.
func captures(moves []engine.Move) []engine.Move {
	var out []engine.Move
	for _, m := range moves {
		if m.IsCapture() {
			out = append(out, m)
		}
	}
	return out
}

// mateScore is the score of a position where alliance a is checkmated
// with depth plies still to search. Mates found higher in the tree
// score further from zero.
func mateScore(a chess.Alliance, depth int) int {
	if a == chess.White {
		return -(MateScore + depth)
	}
	return MateScore + depth
}
