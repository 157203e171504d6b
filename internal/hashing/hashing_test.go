package hashing

import (
	"testing"

	"github.com/lgbarn/chessai-go/internal/chess"
)

func TestKeys_Stable(t *testing.T) {
	// Keys come from a fixed seed, so a second table must match the first.
	again := newKeys(0x9e3779b97f4a7c15)
	if *again != *zobrist {
		t.Error("key tables generated from the same seed differ")
	}
}

func TestKeys_Distinct(t *testing.T) {
	seen := make(map[uint64]string)
	check := func(k uint64, name string) {
		t.Helper()
		if k == 0 {
			t.Errorf("%s key is zero", name)
		}
		if prev, ok := seen[k]; ok {
			t.Errorf("%s key collides with %s", name, prev)
		}
		seen[k] = name
	}

	for pt := chess.Pawn; pt < chess.NumPieceTypes; pt++ {
		for _, a := range []chess.Alliance{chess.White, chess.Black} {
			for _, first := range []bool{false, true} {
				for _, c := range chess.AllCoordinates() {
					check(PieceKey(pt, a, first, c), pt.String()+a.String()+c.String())
				}
			}
		}
	}
	check(SideKey(), "side")
	for f := 0; f < chess.BoardWidth; f++ {
		check(EnPassantKey(f), "en passant")
	}
}

func TestPieceKey_FirstMoveMatters(t *testing.T) {
	e1 := chess.MustCoordinate(4, 0)
	moved := PieceKey(chess.King, chess.White, false, e1)
	unmoved := PieceKey(chess.King, chess.White, true, e1)
	if moved == unmoved {
		t.Error("first-move flag should change the piece key")
	}
}

func TestSplitmix64_Deterministic(t *testing.T) {
	a := splitmix64{state: 1}
	b := splitmix64{state: 1}
	for i := 0; i < 16; i++ {
		if x, y := a.next(), b.next(); x != y {
			t.Fatalf("step %d: %x != %x", i, x, y)
		}
	}
}
