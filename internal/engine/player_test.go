package engine

import (
	"testing"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
	"github.com/lgbarn/chessai-go/internal/testutil"
)

func mustMove(t *testing.T, b *Board, text string) Move {
	t.Helper()
	m, err := FindMove(b, text)
	if err != nil {
		t.Fatalf("FindMove(%q) on %s: %v", text, b.FEN(), err)
	}
	return m
}

func play(t *testing.T, b *Board, moves ...string) *Board {
	t.Helper()
	for _, text := range moves {
		next, err := MakeMove(b, b.MoveMaker(), mustMove(t, b, text))
		if err != nil {
			t.Fatalf("MakeMove(%q): %v", text, err)
		}
		b = next
	}
	return b
}

func perft(b *Board, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := b.CurrentPlayer().legal
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		nodes += perft(m.Execute(b), depth-1)
	}
	return nodes
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int
	}{
		{"initial depth 1", InitialFEN, 1, 20},
		{"initial depth 2", InitialFEN, 2, 400},
		{"initial depth 3", InitialFEN, 3, 8902},
		{"kiwipete depth 1", benchFENs["Complex"], 1, 48},
		{"kiwipete depth 2", benchFENs["Complex"], 2, 2039},
		{"rook endgame depth 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := MustParseFEN(tt.fen)
			if got := perft(board, tt.depth); got != tt.want {
				t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
			}
		})
	}
}

func TestLegalMoves_NeverLeaveKingInCheck(t *testing.T) {
	for name, fen := range benchFENs {
		t.Run(name, func(t *testing.T) {
			board := MustParseFEN(fen)
			for _, a := range []chess.Alliance{chess.White, chess.Black} {
				for _, m := range LegalMoves(board, a) {
					next := m.Execute(board)
					king, ok := next.King(a)
					if !ok {
						t.Fatalf("%v: %s lost the king", a, m)
					}
					if next.IsAttacked(king.Coordinate(), a.Opponent()) {
						t.Errorf("%v: %s leaves the king on %s attacked", a, m, king.Coordinate())
					}
				}
			}
		})
	}
}

func TestLegalMoves_PieceCountRoundTrip(t *testing.T) {
	for name, fen := range benchFENs {
		t.Run(name, func(t *testing.T) {
			board := MustParseFEN(fen)
			before := board.PieceCount()
			for _, m := range board.CurrentPlayer().LegalMoves() {
				want := before
				if m.IsCapture() {
					want--
				}
				if got := m.Execute(board).PieceCount(); got != want {
					t.Errorf("%s: piece count = %d, want %d", m, got, want)
				}
			}
		})
	}
}

func TestExecute_DoesNotMutateSource(t *testing.T) {
	board := MustParseFEN(benchFENs["Complex"])
	fen, hash := board.FEN(), board.Hash()
	for _, m := range board.CurrentPlayer().LegalMoves() {
		m.Execute(board)
	}
	testutil.AssertEqual(t, board.FEN(), fen)
	testutil.AssertEqual(t, board.Hash(), hash)
}

func TestPinnedPieceCannotMove(t *testing.T) {
	board := MustParseFEN("4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	for _, m := range LegalMoves(board, chess.White) {
		if m.Piece().Type() == chess.Bishop {
			t.Errorf("pinned bishop offered %s", m)
		}
	}
	bishopMoves := 0
	for _, m := range board.PseudoLegalMoves(chess.White) {
		if m.Piece().Type() == chess.Bishop {
			bishopMoves++
		}
	}
	testutil.AssertTrue(t, bishopMoves > 0, "bishop should have pseudo-legal moves")
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name          string
		fen           string
		alliance      chess.Alliance
		wantCheck     bool
		wantCheckmate bool
		wantStalemate bool
		wantOutcome   Outcome
	}{
		{
			name:        "initial position",
			fen:         InitialFEN,
			alliance:    chess.White,
			wantOutcome: InProgress,
		},
		{
			name:          "fool's mate",
			fen:           "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
			alliance:      chess.White,
			wantCheck:     true,
			wantCheckmate: true,
			wantOutcome:   Checkmate,
		},
		{
			name:          "queen stalemate",
			fen:           "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			alliance:      chess.Black,
			wantStalemate: true,
			wantOutcome:   Stalemate,
		},
		{
			name:        "check with escape",
			fen:         "4k3/8/8/8/8/8/8/r3K3 w - - 0 1",
			alliance:    chess.White,
			wantCheck:   true,
			wantOutcome: InProgress,
		},
		{
			name:        "bare kings",
			fen:         "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			alliance:    chess.White,
			wantOutcome: InsufficientMaterial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := MustParseFEN(tt.fen)
			testutil.AssertEqual(t, IsInCheck(board, tt.alliance), tt.wantCheck, "IsInCheck")
			testutil.AssertEqual(t, IsInCheckmate(board, tt.alliance), tt.wantCheckmate, "IsInCheckmate")
			testutil.AssertEqual(t, IsInStalemate(board, tt.alliance), tt.wantStalemate, "IsInStalemate")
			testutil.AssertEqual(t, GameOutcome(board), tt.wantOutcome, "GameOutcome")
			if tt.wantCheckmate || tt.wantStalemate {
				testutil.AssertFalse(t, HasLegalMoves(board, tt.alliance))
				testutil.AssertTrue(t, IsGameOver(board))
			}
		})
	}
}

func TestEnPassant(t *testing.T) {
	start := MustParseFEN("rnbqkbnr/pppppppp/8/4P3/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")

	t.Run("available right after the jump", func(t *testing.T) {
		board := play(t, start, "d7d5")
		pawn, ok := board.EnPassantPawn()
		testutil.AssertTrue(t, ok, "en passant pawn set after jump")
		testutil.AssertEqual(t, pawn.Coordinate().String(), "d5")

		capture := mustMove(t, board, "e5d6")
		testutil.AssertEqual(t, capture.Kind(), EnPassantAttack)
		captured, ok := capture.Captured()
		testutil.AssertTrue(t, ok)
		testutil.AssertEqual(t, captured.Coordinate().String(), "d5")

		after, err := MakeMove(board, chess.White, capture)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, after.IsEmpty(chess.MustCoordinate(3, 4)), "passed pawn removed from d5")
		landed, ok := after.PieceAt(chess.MustCoordinate(3, 5))
		testutil.AssertTrue(t, ok)
		testutil.AssertEqual(t, landed.Type(), chess.Pawn)
		testutil.AssertEqual(t, after.PieceCount(), board.PieceCount()-1)
		_, ok = after.EnPassantPawn()
		testutil.AssertFalse(t, ok, "en passant slot cleared")
	})

	t.Run("gone one move later", func(t *testing.T) {
		board := play(t, start, "d7d5", "g1f3", "g8f6")
		for _, m := range LegalMoves(board, chess.White) {
			if m.Kind() == EnPassantAttack {
				t.Errorf("unexpected en passant %s", m)
			}
		}
		_, err := FindMove(board, "e5d6")
		testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	})

	t.Run("single push gives no en passant", func(t *testing.T) {
		board := play(t, start, "d7d6")
		_, ok := board.EnPassantPawn()
		testutil.AssertFalse(t, ok)
	})
}

func TestE2E4Scenario(t *testing.T) {
	board := MustParseFEN(InitialFEN)
	m := mustMove(t, board, "e2e4")
	testutil.AssertEqual(t, m.Kind(), PawnJump)

	next, err := MakeMove(board, chess.White, m)
	testutil.AssertNoError(t, err)
	pawn, ok := next.EnPassantPawn()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, pawn.Coordinate().String(), "e4")
	testutil.AssertEqual(t, pawn.Alliance(), chess.White)
	testutil.AssertEqual(t, next.MoveMaker(), chess.Black)

	transition, ok := next.TransitionMove()
	testutil.AssertTrue(t, ok)
	testutil.AssertTrue(t, transition.Equal(m))

	replies := LegalMoves(next, chess.Black)
	testutil.AssertEqual(t, len(replies), 20)
	for _, r := range replies {
		if r.Kind() == EnPassantAttack {
			t.Errorf("black offered en passant %s with no adjacent pawn", r)
		}
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		wantKing  bool
		wantQueen bool
	}{
		{"both sides open", "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1", true, true},
		{"no rights", "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w - - 0 1", false, false},
		{"king side blocked", "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K1NR w KQkq - 0 1", false, true},
		{"pass-through square attacked", "4kr2/8/8/8/8/8/8/4K2R w K - 0 1", false, false},
		{"destination attacked", "4k1r1/8/8/8/8/8/8/4K2R w K - 0 1", false, false},
		{"king in check", "4k3/8/8/8/8/8/8/r3K2R w K - 0 1", false, false},
		{"b-file attack does not stop queen side", "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := MustParseFEN(tt.fen)
			var gotKing, gotQueen bool
			for _, m := range LegalMoves(board, chess.White) {
				switch m.Kind() {
				case KingSideCastle:
					gotKing = true
				case QueenSideCastle:
					gotQueen = true
				}
			}
			testutil.AssertEqual(t, gotKing, tt.wantKing, "king side")
			testutil.AssertEqual(t, gotQueen, tt.wantQueen, "queen side")
		})
	}
}

func TestCastling_MovesRook(t *testing.T) {
	board := MustParseFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")

	kingSide := play(t, board, "e1g1")
	testutil.AssertEqual(t, kingSide.FEN(), "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1 b kq - 0 1")
	testutil.AssertTrue(t, kingSide.WhitePlayer().IsCastled())

	queenSide := play(t, board, "e1c1")
	testutil.AssertEqual(t, queenSide.FEN(), "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/2KR3R b kq - 0 1")
	rook, ok := queenSide.PieceAt(chess.MustCoordinate(3, 0))
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, rook.Type(), chess.Rook)
	testutil.AssertFalse(t, rook.IsFirstMove())
}

func TestPromotion(t *testing.T) {
	board := MustParseFEN("1r6/P6k/8/8/8/8/8/K7 w - - 0 1")

	t.Run("auto queen", func(t *testing.T) {
		m := mustMove(t, board, "a7a8")
		testutil.AssertEqual(t, m.Kind(), Promotion)
		testutil.AssertEqual(t, m.PromotionType(), chess.Queen)
		testutil.AssertEqual(t, m.String(), "a7a8q")
		next := play(t, board, "a7a8")
		queen, _ := next.PieceAt(chess.MustCoordinate(0, 7))
		testutil.AssertEqual(t, queen.Type(), chess.Queen)
		testutil.AssertEqual(t, queen.Alliance(), chess.White)
	})

	t.Run("capture promotion", func(t *testing.T) {
		next := play(t, board, "a7b8")
		testutil.AssertEqual(t, next.PieceCount(), board.PieceCount()-1)
		piece, _ := next.PieceAt(chess.MustCoordinate(1, 7))
		testutil.AssertEqual(t, piece.Type(), chess.Queen)
	})

	t.Run("under-promotion", func(t *testing.T) {
		m, err := ParseMove(board, "a7a8n")
		testutil.AssertNoError(t, err)
		next, err := MakeMove(board, chess.White, m)
		testutil.AssertNoError(t, err)
		knight, _ := next.PieceAt(chess.MustCoordinate(0, 7))
		testutil.AssertEqual(t, knight.Type(), chess.Knight)
	})

	t.Run("cannot promote to king", func(t *testing.T) {
		_, err := ParseMove(board, "a7a8k")
		testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	})
}

func TestMakeMove_Rejections(t *testing.T) {
	board := MustParseFEN(InitialFEN)

	t.Run("not the player's turn", func(t *testing.T) {
		m, err := ParseMove(board, "e7e5")
		testutil.AssertNoError(t, err)
		transition := board.BlackPlayer().MakeMove(m)
		testutil.AssertEqual(t, transition.Status, IllegalMove)
		testutil.AssertNil(t, transition.To)
		_, err = MakeMove(board, chess.Black, m)
		testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	})

	t.Run("geometrically impossible", func(t *testing.T) {
		m, err := ParseMove(board, "e2e5")
		testutil.AssertNoError(t, err)
		_, err = MakeMove(board, chess.White, m)
		var moveErr *errors.MoveError
		testutil.AssertTrue(t, errors.As(err, &moveErr), "want *MoveError")
		testutil.AssertEqual(t, moveErr.MoveText, "e2e5")
		testutil.AssertEqual(t, moveErr.Alliance, "White")
		testutil.AssertEqual(t, moveErr.FEN, board.FEN())
	})

	t.Run("exposes the king", func(t *testing.T) {
		pinned := MustParseFEN("4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
		m, err := ParseMove(pinned, "e2d3")
		testutil.AssertNoError(t, err)
		transition := pinned.WhitePlayer().MakeMove(m)
		testutil.AssertEqual(t, transition.Status, LeavesPlayerInCheck)
		testutil.AssertErrorIs(t, transition.Err(), errors.ErrIllegalMove)
	})

	t.Run("empty origin", func(t *testing.T) {
		_, err := ParseMove(board, "e4e5")
		testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	})

	t.Run("source board untouched", func(t *testing.T) {
		testutil.AssertEqual(t, board.FEN(), InitialFEN)
	})
}

func TestAllLegalMoves(t *testing.T) {
	board := MustParseFEN(InitialFEN)
	all := board.AllLegalMoves()
	testutil.AssertEqual(t, len(all), 40)
	testutil.AssertEqual(t, all[0].Piece().Alliance(), chess.White)
	testutil.AssertEqual(t, all[len(all)-1].Piece().Alliance(), chess.Black)
}

func TestHash_Transposition(t *testing.T) {
	start := MustParseFEN(InitialFEN)
	a := play(t, start, "g1f3", "g8f6", "b1c3")
	b := play(t, start, "b1c3", "g8f6", "g1f3")
	testutil.AssertEqual(t, a.Hash(), b.Hash())
	testutil.AssertEqual(t, a.FEN(), b.FEN())

	c := play(t, start, "g1f3", "g8f6")
	testutil.AssertTrue(t, a.Hash() != c.Hash(), "different positions should hash differently")
}
