package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
)

// LegalMoves returns the legal moves of alliance a on b, in generation
// order: pieces in tile order, each piece's moves in offset order.
func LegalMoves(b *Board, a chess.Alliance) []Move {
	return b.Player(a).LegalMoves()
}

// HasLegalMoves returns true if alliance a has at least one legal move.
func HasLegalMoves(b *Board, a chess.Alliance) bool {
	return len(b.Player(a).legal) > 0
}

// MakeMove plays m for alliance a and returns the resulting board. It fails
// with a *errors.MoveError wrapping errors.ErrIllegalMove when it is not
// a's turn or m is not legal; b is never modified.
func MakeMove(b *Board, a chess.Alliance, m Move) (*Board, error) {
	t := b.Player(a).MakeMove(m)
	if !t.IsDone() {
		return nil, t.Err()
	}
	return t.To, nil
}

// ParseMove reads coordinate notation ("e2e4", "e7e8n") against b. The
// piece on the origin square decides the alliance. When the text matches
// one of that piece's generated moves the generated move is returned, so
// castles and en passant keep their kind; otherwise a plain move is
// returned and the legality gate rejects it.
func ParseMove(b *Board, text string) (Move, error) {
	text = strings.TrimSpace(text)
	if len(text) < 4 || len(text) > 5 {
		return Move{}, &errors.MoveError{Err: errors.ErrIllegalMove, MoveText: text}
	}
	from, err := chess.ParseCoordinate(text[:2])
	if err != nil {
		return Move{}, &errors.MoveError{Err: err, MoveText: text}
	}
	to, err := chess.ParseCoordinate(text[2:4])
	if err != nil {
		return Move{}, &errors.MoveError{Err: err, MoveText: text}
	}
	piece, ok := b.PieceAt(from)
	if !ok {
		return Move{}, &errors.MoveError{
			Err:      fmt.Errorf("no piece on %s: %w", from, errors.ErrIllegalMove),
			MoveText: text,
		}
	}

	promoteTo := chess.Empty
	if len(text) == 5 {
		promoteTo = chess.PieceTypeFromLetter(text[4])
		if promoteTo == chess.Empty {
			return Move{}, &errors.MoveError{Err: errors.ErrIllegalMove, MoveText: text, Alliance: piece.alliance.String()}
		}
	}

	for _, m := range b.pseudoLegal(piece.alliance) {
		if m.piece != piece || m.dest != to {
			continue
		}
		if promoteTo != chess.Empty {
			return m.WithPromotion(promoteTo)
		}
		return m, nil
	}
	return newNormalMove(piece, to), nil
}

// FindMove returns the legal move of the side to move that matches text.
func FindMove(b *Board, text string) (Move, error) {
	m, err := ParseMove(b, text)
	if err != nil {
		return Move{}, err
	}
	if m.piece.alliance != b.moveMaker || !b.CurrentPlayer().IsMoveLegal(m) {
		return Move{}, &errors.MoveError{
			Err:      errors.ErrIllegalMove,
			MoveText: text,
			Alliance: m.piece.alliance.String(),
			FEN:      b.FEN(),
		}
	}
	return m, nil
}
