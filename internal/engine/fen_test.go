package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
	"github.com/lgbarn/chessai-go/internal/testutil"
)

func TestParseFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(*Board) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(b *Board) bool {
				king, _ := b.King(chess.White)
				rook, _ := b.PieceAt(chess.MustCoordinate(7, 0))
				pawn, _ := b.PieceAt(chess.MustCoordinate(4, 1))
				return b.PieceCount() == 32 &&
					b.MoveMaker() == chess.White &&
					king.Coordinate().String() == "e1" &&
					king.IsFirstMove() && rook.IsFirstMove() && pawn.IsFirstMove()
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(b *Board) bool {
				ep, ok := b.EnPassantPawn()
				return ok && ep.Coordinate().String() == "e4" &&
					ep.Alliance() == chess.White &&
					b.MoveMaker() == chess.Black &&
					b.IsEmpty(chess.MustCoordinate(4, 1))
			},
		},
		{
			name: "castling rights decide king and rook flags",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1",
			checkFn: func(b *Board) bool {
				wk, _ := b.PieceAt(chess.MustCoordinate(4, 0))
				wa, _ := b.PieceAt(chess.MustCoordinate(0, 0))
				wh, _ := b.PieceAt(chess.MustCoordinate(7, 0))
				ba, _ := b.PieceAt(chess.MustCoordinate(0, 7))
				bh, _ := b.PieceAt(chess.MustCoordinate(7, 7))
				return wk.IsFirstMove() && !wa.IsFirstMove() && wh.IsFirstMove() &&
					ba.IsFirstMove() && !bh.IsFirstMove()
			},
		},
		{
			name: "clocks are optional",
			fen:  "4k3/8/8/8/8/8/8/4K3 w",
			checkFn: func(b *Board) bool {
				return b.PieceCount() == 2
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := ParseFEN(tt.fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q) error: %v", tt.fen, err)
			}
			if !tt.checkFn(board) {
				t.Errorf("ParseFEN(%q) produced unexpected board:\n%s", tt.fen, board)
			}
		})
	}
}

func TestParseFEN_Errors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"rank too long", "4k4/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"rank too short", "4k2/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"bad piece", "4k3/8/8/8/8/8/8/4X3 w - - 0 1"},
		{"bad side", "4k3/8/8/8/8/8/8/4K3 x - - 0 1"},
		{"missing white king", "4k3/8/8/8/8/8/8/8 w - - 0 1"},
		{"two black kings", "3kk3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"castling without rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1"},
		{"bad castling letter", "4k3/8/8/8/8/8/8/R3K3 w X - 0 1"},
		{"en passant without pawn", "4k3/8/8/8/8/8/8/4K3 b - e3 0 1"},
		{"en passant off board", "4k3/8/8/8/8/8/8/4K3 b - z9 0 1"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4RK2 w - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
		})
	}
}

func TestParseFEN_InvalidPositionIsVisible(t *testing.T) {
	_, err := ParseFEN("4k3/8/8/8/8/8/8/8 w - - 0 1")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidPosition)
	var posErr *errors.PositionError
	testutil.AssertTrue(t, errors.As(err, &posErr))
	testutil.AssertEqual(t, posErr.Field, "White king")
}

func TestFEN_RoundTrip(t *testing.T) {
	for name, fen := range benchFENs {
		t.Run(name, func(t *testing.T) {
			board := MustParseFEN(fen)
			// Clocks are not tracked; compare the first four fields.
			want := strings.Join(strings.Fields(fen)[:4], " ")
			got := strings.Join(strings.Fields(board.FEN())[:4], " ")
			testutil.AssertEqual(t, got, want)
		})
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	for name, fen := range benchFENs {
		t.Run(name, func(t *testing.T) {
			board := MustParseFEN(fen)
			data, err := json.Marshal(board)
			testutil.AssertNoError(t, err)

			restored, err := UnmarshalBoard(data)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, restored.FEN(), board.FEN())
			testutil.AssertEqual(t, restored.Hash(), board.Hash())
			testutil.AssertEqual(t, restored.Snapshot(), board.Snapshot())
		})
	}
}

func TestSnapshot_Fields(t *testing.T) {
	board := MustParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	s := board.Snapshot()
	testutil.AssertEqual(t, s.MoveMaker, "White")
	testutil.AssertNotNil(t, s.EnPassant)
	testutil.AssertEqual(t, *s.EnPassant, "d5")
	testutil.AssertEqual(t, s.Pieces[0], PieceSnapshot{Square: "e1", Type: "King", Alliance: "White"})

	quiet := MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	data, err := json.Marshal(quiet)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, string(data), `"enPassant":null`)
}

func TestFromSnapshot_Errors(t *testing.T) {
	kings := []PieceSnapshot{
		{Square: "e1", Type: "King", Alliance: "White"},
		{Square: "e8", Type: "King", Alliance: "Black"},
	}
	square := "e4"

	tests := []struct {
		name string
		s    Snapshot
		want error
	}{
		{"bad square", Snapshot{Pieces: append(kings, PieceSnapshot{Square: "i9", Type: "Pawn", Alliance: "White"}), MoveMaker: "White"}, errors.ErrOutOfBounds},
		{"bad type", Snapshot{Pieces: append(kings, PieceSnapshot{Square: "a2", Type: "Wizard", Alliance: "White"}), MoveMaker: "White"}, errors.ErrInvalidPosition},
		{"bad alliance", Snapshot{Pieces: append(kings, PieceSnapshot{Square: "a2", Type: "Pawn", Alliance: "Green"}), MoveMaker: "White"}, errors.ErrInvalidPosition},
		{"double occupancy", Snapshot{Pieces: append(kings, PieceSnapshot{Square: "e1", Type: "Pawn", Alliance: "White"}), MoveMaker: "White"}, errors.ErrInvalidPosition},
		{"bad move maker", Snapshot{Pieces: kings, MoveMaker: "Red"}, errors.ErrInvalidPosition},
		{"en passant on empty square", Snapshot{Pieces: kings, MoveMaker: "Black", EnPassant: &square}, errors.ErrInvalidPosition},
		{"no kings", Snapshot{MoveMaker: "White"}, errors.ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSnapshot(tt.s)
			testutil.AssertErrorIs(t, err, tt.want)
		})
	}
}

func TestRenderText(t *testing.T) {
	board := MustParseFEN(InitialFEN)
	lines := strings.Split(strings.TrimSuffix(RenderText(board), "\n"), "\n")
	testutil.AssertEqual(t, len(lines), chess.BoardHeight)
	testutil.AssertEqual(t, lines[0], " r  n  b  q  k  b  n  r ")
	testutil.AssertEqual(t, lines[1], " p  p  p  p  p  p  p  p ")
	testutil.AssertEqual(t, lines[3], strings.Repeat(" ", 3*chess.BoardWidth))
	testutil.AssertEqual(t, lines[7], " R  N  B  Q  K  B  N  R ")
	testutil.AssertEqual(t, board.String(), RenderText(board))
}
