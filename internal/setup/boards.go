// Package setup builds the starting positions the game offers: the
// standard array, the tutor exercises and randomised openings.
package setup

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/errors"
)

// NumTutorBoards is the number of tutor exercises.
const NumTutorBoards = 4

// StandardBoard returns the initial position with White to move.
func StandardBoard() *engine.Board {
	return engine.MustParseFEN(engine.InitialFEN)
}

// Tutor exercises, Black to move, each winnable for Black in a few moves.
// Entries are a piece letter (upper case White) and a square; a trailing
// '*' marks a piece that has already moved.
var tutorLayouts = [NumTutorBoards][]string{
	{
		"ra8", "bc8", "qd8", "bf8", "kg8*", "rh8",
		"pa7", "pb7", "pc7", "pg7", "ph7", "nc6", "pe5",
		"Bc4", "Ra1", "Nb1", "Bc1", "Ke1", "Rh1",
		"Pa2", "Pb2", "Pc2", "Pd2", "Pf2", "Pg2", "Ph2",
	},
	{
		"ra7*", "pa6*", "pg6*", "ph6*", "rd5*", "pe5*", "kf5*", "pf4",
		"Rc6*", "Rf6*", "Pa5*", "Pd3*", "Pf3*", "Ph3*", "Pg2*", "Kg1*",
	},
	{
		"ra8", "rf8*", "pa7", "bb7*", "pc7", "nd7*", "qe7*", "kf7*", "pg7*",
		"pb6*", "pd6*", "pe6*", "bf6*", "ph6*",
		"Nc5*", "Pd4*", "Pg4*", "Ph4*", "Pc3*", "Qd3*", "Nf3*",
		"Pa2", "Pb2", "Bc2*", "Pf2", "Kc1*", "Rd1*", "Rh1",
	},
	{
		"rc8*", "re8*", "kg8*", "pa7", "bb7*", "pf7", "pg7", "pb6", "ph6", "qg2*",
		"Nf5*", "Bg5*", "Qh5*", "Pg4*", "Rc3*", "Bd3*", "Pe3*",
		"Pa2", "Pb2", "Ph2", "Ke1",
	},
}

// TutorBoard returns tutor exercise n, numbered from 1.
func TutorBoard(n int) (*engine.Board, error) {
	if n < 1 || n > NumTutorBoards {
		return nil, fmt.Errorf("tutor board %d outside 1..%d: %w", n, NumTutorBoards, errors.ErrInvalidConfig)
	}
	b, err := FromLayout(tutorLayouts[n-1], chess.Black)
	if err != nil {
		return nil, fmt.Errorf("tutor board %d: %w", n, err)
	}
	return b, nil
}

// FromLayout builds a board from layout entries such as "Ke1" or "pa6*".
// Pawns away from their starting rank are always treated as moved.
func FromLayout(entries []string, toMove chess.Alliance) (*engine.Board, error) {
	bl := engine.NewBuilder().SetMoveMaker(toMove)
	for _, entry := range entries {
		p, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		bl.SetPiece(p)
	}
	return bl.Build()
}

func parseEntry(entry string) (engine.Piece, error) {
	moved := strings.HasSuffix(entry, "*")
	text := strings.TrimSuffix(entry, "*")
	if len(text) != 3 {
		return engine.Piece{}, &errors.PositionError{Err: errors.ErrInvalidPosition, Field: "layout entry", Got: entry}
	}

	kind := chess.PieceTypeFromLetter(text[0])
	if kind == chess.Empty {
		return engine.Piece{}, &errors.PositionError{Err: errors.ErrInvalidPosition, Field: "piece letter", Got: entry}
	}
	alliance := chess.Black
	if text[0] >= 'A' && text[0] <= 'Z' {
		alliance = chess.White
	}
	c, err := chess.ParseCoordinate(text[1:])
	if err != nil {
		return engine.Piece{}, fmt.Errorf("layout entry %q: %w", entry, err)
	}

	first := !moved
	if kind == chess.Pawn && c.Rank() != alliance.PawnRank() {
		first = false
	}
	return engine.NewPiece(kind, alliance, c, first)
}
