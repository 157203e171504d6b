package engine

import (
	"fmt"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
)

// Player is one alliance's view of a board: its legal moves, the
// opponent's raw moves and its check status. A Player is derived from its
// board and never changes.
type Player struct {
	board    *Board
	alliance chess.Alliance
	legal    []Move
	inCheck  bool
}

func newPlayer(b *Board, a chess.Alliance) *Player {
	p := &Player{board: b, alliance: a, inCheck: b.kingAttacked(a)}
	for _, m := range b.pseudoLegal(a) {
		if !m.Execute(b).kingAttacked(a) {
			p.legal = append(p.legal, m)
		}
	}
	return p
}

// Alliance returns the side this player moves for.
func (p *Player) Alliance() chess.Alliance {
	return p.alliance
}

// Opponent returns the opposing player on the same board.
func (p *Player) Opponent() *Player {
	return p.board.Player(p.alliance.Opponent())
}

// LegalMoves returns a copy of the player's legal moves in generation order.
func (p *Player) LegalMoves() []Move {
	moves := make([]Move, len(p.legal))
	copy(moves, p.legal)
	return moves
}

// OpponentMoves returns the opponent's pseudo-legal moves on this board.
func (p *Player) OpponentMoves() []Move {
	return p.board.PseudoLegalMoves(p.alliance.Opponent())
}

// IsMoveLegal reports whether m is among the player's legal moves.
func (p *Player) IsMoveLegal(m Move) bool {
	_, ok := p.find(m)
	return ok
}

// IsInCheck reports whether the player's king is attacked.
func (p *Player) IsInCheck() bool {
	return p.inCheck
}

// IsInCheckmate reports check with no legal move to escape.
func (p *Player) IsInCheckmate() bool {
	return p.inCheck && len(p.legal) == 0
}

// IsInStalemate reports no legal move while not in check.
func (p *Player) IsInStalemate() bool {
	return !p.inCheck && len(p.legal) == 0
}

// IsCastled reports whether the move that produced the board was a castle
// by this player.
func (p *Player) IsCastled() bool {
	m, ok := p.board.TransitionMove()
	return ok && m.IsCastle() && m.piece.alliance == p.alliance
}

// MakeMove is the single gate for state transitions. It checks that it is
// the player's turn and that m is legal, then executes the stored legal
// move. The source board is never modified.
func (p *Player) MakeMove(m Move) MoveTransition {
	t := MoveTransition{From: p.board, Move: m, Status: IllegalMove}
	if p.board.moveMaker != p.alliance {
		return t
	}
	legal, ok := p.find(m)
	if !ok {
		for _, candidate := range p.board.pseudoLegal(p.alliance) {
			if candidate.Equal(m) {
				t.Status = LeavesPlayerInCheck
				break
			}
		}
		return t
	}
	if legal.kind == Promotion && m.promoteTo != chess.Empty {
		promoted, err := legal.WithPromotion(m.promoteTo)
		if err != nil {
			return t
		}
		legal = promoted
	}
	t.Move = legal
	t.To = legal.Execute(p.board)
	t.Status = Done
	return t
}

func (p *Player) find(m Move) (Move, bool) {
	for _, legal := range p.legal {
		if legal.Equal(m) {
			return legal, true
		}
	}
	return Move{}, false
}

// MoveStatus is the outcome of Player.MakeMove.
type MoveStatus int

const (
	Done                MoveStatus = iota // Move executed
	IllegalMove                           // Not a move of the player, or not the player's turn
	LeavesPlayerInCheck                   // Geometrically possible but exposes the own king
)

// String returns the string representation of a move status.
func (s MoveStatus) String() string {
	switch s {
	case Done:
		return "done"
	case IllegalMove:
		return "illegal move"
	case LeavesPlayerInCheck:
		return "leaves player in check"
	}
	return "unknown"
}

// MoveTransition is the result of a move attempt. To is set only when
// Status is Done.
type MoveTransition struct {
	From   *Board
	To     *Board
	Move   Move
	Status MoveStatus
}

// IsDone reports whether the move was executed.
func (t MoveTransition) IsDone() bool {
	return t.Status == Done
}

// Err returns nil for a completed move, otherwise a *errors.MoveError
// wrapping errors.ErrIllegalMove.
func (t MoveTransition) Err() error {
	if t.Status == Done {
		return nil
	}
	e := &errors.MoveError{Err: errors.ErrIllegalMove, MoveText: t.Move.String()}
	if t.Status != IllegalMove {
		e.Err = fmt.Errorf("%s: %w", t.Status, errors.ErrIllegalMove)
	}
	if !t.Move.piece.isNone() {
		e.Alliance = t.Move.piece.alliance.String()
	}
	if t.From != nil {
		e.FEN = t.From.FEN()
	}
	return e
}
