package engine

import (
	"testing"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
	"github.com/lgbarn/chessai-go/internal/testutil"
)

// TestHasInsufficientMaterial tests various material configurations
func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool // true = insufficient material
	}{
		{"K vs K", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"K+N vs K", "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"K vs K+b", "4k1b1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K vs K+n", "4k1n1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K+B same color", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"K+R vs K", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", false},
		{"K+Q vs K", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", false},
		{"K+P vs K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"K+B vs K+B opposite color", "4kb2/8/8/8/8/8/8/3BK3 w - - 0 1", false},
		{"K+B+B vs K", "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", false},
		{"K+N vs K+N", "4kn2/8/8/8/8/8/8/4KN2 w - - 0 1", false},
		{"standard starting position", InitialFEN, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			board, err := ParseFEN(tt.fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q) error: %v", tt.fen, err)
			}

			got := HasInsufficientMaterial(board)
			if got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		wantText string
		wantDraw bool
	}{
		{InProgress, "in progress", false},
		{Checkmate, "checkmate", false},
		{Stalemate, "stalemate", true},
		{InsufficientMaterial, "insufficient material", true},
		{Outcome(99), "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.wantText, func(t *testing.T) {
			testutil.AssertEqual(t, tt.outcome.String(), tt.wantText)
			testutil.AssertEqual(t, tt.outcome.IsDraw(), tt.wantDraw)
		})
	}
}

func TestNewPiece(t *testing.T) {
	e4 := chess.MustCoordinate(4, 3)

	t.Run("valid", func(t *testing.T) {
		p, err := NewPiece(chess.Knight, chess.Black, e4, false)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, p.String(), "ne4")
		testutil.AssertEqual(t, p.Value(), 320)
	})

	t.Run("empty type rejected", func(t *testing.T) {
		_, err := NewPiece(chess.Empty, chess.White, e4, false)
		testutil.AssertErrorIs(t, err, errors.ErrInvalidPosition)
	})

	t.Run("off the board", func(t *testing.T) {
		_, err := NewPieceAt(chess.Rook, chess.White, chess.BoardWidth, 0, true)
		testutil.AssertErrorIs(t, err, errors.ErrOutOfBounds)
	})

	t.Run("MustPiece panics off the board", func(t *testing.T) {
		defer func() {
			testutil.AssertNotNil(t, recover(), "expected panic")
		}()
		MustPiece(chess.Rook, chess.White, -1, 0, true)
	})
}

func TestPieceEquality(t *testing.T) {
	knight := MustPiece(chess.Knight, chess.White, 4, 3, false)
	bishop := MustPiece(chess.Bishop, chess.White, 4, 3, false)
	unmoved := MustPiece(chess.Knight, chess.White, 4, 3, true)

	testutil.AssertTrue(t, knight == MustPiece(chess.Knight, chess.White, 4, 3, false))
	testutil.AssertFalse(t, knight == bishop, "type is part of equality")
	testutil.AssertFalse(t, knight == unmoved, "first-move flag is part of equality")
}

func TestMovePiece(t *testing.T) {
	board := MustParseFEN(InitialFEN)
	m := mustMove(t, board, "g1f3")
	moved := m.Piece().MovePiece(m)
	testutil.AssertEqual(t, moved.Coordinate().String(), "f3")
	testutil.AssertFalse(t, moved.IsFirstMove())
	testutil.AssertEqual(t, moved.Type(), chess.Knight)
	testutil.AssertTrue(t, m.Piece().IsFirstMove(), "moved piece unchanged")
}

func TestLocationValue(t *testing.T) {
	tests := []struct {
		name    string
		piece   Piece
		endgame bool
		want    int
	}{
		{"white knight in centre", MustPiece(chess.Knight, chess.White, 3, 3, false), false, 20},
		{"black knight mirrored", MustPiece(chess.Knight, chess.Black, 3, 4, false), false, 20},
		{"white knight in corner", MustPiece(chess.Knight, chess.White, 0, 0, true), false, -50},
		{"white king castled", MustPiece(chess.King, chess.White, 6, 0, false), false, 30},
		{"white king castled in endgame", MustPiece(chess.King, chess.White, 6, 0, false), true, -30},
		{"black pawn about to promote", MustPiece(chess.Pawn, chess.Black, 0, 1, false), false, 50},
		{"black pawn about to promote in endgame", MustPiece(chess.Pawn, chess.Black, 0, 1, false), true, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.piece.LocationValue(tt.endgame), tt.want)
		})
	}
}
