package engine

import "github.com/lgbarn/chessai-go/internal/chess"

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirs     = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// slidingMoves walks each direction until the edge, a friendly piece
// (excluded) or an enemy piece (included as a capture).
func (p Piece) slidingMoves(b *Board, dirs [][2]int) []Move {
	var moves []Move
	for _, dir := range dirs {
		from := p.coord
		for {
			to, ok := from.Step(dir[0], dir[1])
			if !ok {
				break
			}
			occupant, occupied := b.PieceAt(to)
			if occupied {
				if occupant.alliance != p.alliance {
					moves = append(moves, newAttackMove(p, to, occupant))
				}
				break
			}
			moves = append(moves, newNormalMove(p, to))
			from = to
		}
	}
	return moves
}

// leaperMoves tries each offset once (knight and king).
func (p Piece) leaperMoves(b *Board, offsets [][2]int) []Move {
	moves := make([]Move, 0, len(offsets))
	for _, offset := range offsets {
		to, ok := p.coord.Step(offset[0], offset[1])
		if !ok {
			continue
		}
		occupant, occupied := b.PieceAt(to)
		switch {
		case !occupied:
			moves = append(moves, newNormalMove(p, to))
		case occupant.alliance != p.alliance:
			moves = append(moves, newAttackMove(p, to, occupant))
		}
	}
	return moves
}

// pawnMoves generates pushes, the first-move double push, diagonal captures,
// en passant and auto-queen promotions.
func (p Piece) pawnMoves(b *Board) []Move {
	var moves []Move
	dir := p.alliance.Direction()
	promotionRank := p.alliance.PromotionRank()

	if forward, ok := p.coord.Step(0, dir); ok && b.IsEmpty(forward) {
		if forward.Rank() == promotionRank {
			moves = append(moves, newPromotionMove(p, forward, Piece{}))
		} else {
			moves = append(moves, newNormalMove(p, forward))
			if p.firstMove {
				if jump, ok := forward.Step(0, dir); ok && b.IsEmpty(jump) && jump.Rank() != promotionRank {
					moves = append(moves, newPawnJump(p, jump))
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		target, ok := p.coord.Step(df, dir)
		if !ok {
			continue
		}
		if occupant, occupied := b.PieceAt(target); occupied {
			if occupant.alliance == p.alliance {
				continue
			}
			if target.Rank() == promotionRank {
				moves = append(moves, newPromotionMove(p, target, occupant))
			} else {
				moves = append(moves, newAttackMove(p, target, occupant))
			}
			continue
		}
		ep, ok := b.EnPassantPawn()
		if ok && ep.alliance != p.alliance &&
			ep.coord.Rank() == p.coord.Rank() && ep.coord.File() == target.File() {
			moves = append(moves, newEnPassantMove(p, target, ep))
		}
	}
	return moves
}

// castleMoves offers king-side and queen-side castling. Both need an
// unmoved king and rook, empty squares between them, and no attacked
// square among the king's origin, the square it passes and its destination.
func (p Piece) castleMoves(b *Board) []Move {
	if !p.firstMove {
		return nil
	}
	opponent := p.alliance.Opponent()
	if b.IsAttacked(p.coord, opponent) {
		return nil
	}
	var moves []Move
	if m, ok := p.castle(b, chess.BoardWidth-1, 1, KingSideCastle); ok {
		moves = append(moves, m)
	}
	if m, ok := p.castle(b, 0, -1, QueenSideCastle); ok {
		moves = append(moves, m)
	}
	return moves
}

func (p Piece) castle(b *Board, rookFile, dir int, kind MoveKind) (Move, bool) {
	distance := (rookFile - p.coord.File()) * dir
	if distance < 3 {
		return Move{}, false
	}
	rookCoord, ok := p.coord.Step(rookFile-p.coord.File(), 0)
	if !ok {
		return Move{}, false
	}
	rook, occupied := b.PieceAt(rookCoord)
	if !occupied || rook.kind != chess.Rook || rook.alliance != p.alliance || !rook.firstMove {
		return Move{}, false
	}
	for step := 1; step < distance; step++ {
		between, _ := p.coord.Step(step*dir, 0)
		if !b.IsEmpty(between) {
			return Move{}, false
		}
	}
	opponent := p.alliance.Opponent()
	for step := 1; step <= 2; step++ {
		path, _ := p.coord.Step(step*dir, 0)
		if b.IsAttacked(path, opponent) {
			return Move{}, false
		}
	}
	kingDest, _ := p.coord.Step(2*dir, 0)
	rookDest, _ := p.coord.Step(dir, 0)
	return newCastleMove(kind, p, kingDest, rook, rookDest), true
}
