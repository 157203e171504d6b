package engine

import "github.com/lgbarn/chessai-go/internal/chess"

// Piece-square tables, written as seen from White with rank 8 on the first
// row. Black pieces read them mirrored vertically.
type squareTable [8][8]int

var pawnTable = squareTable{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var pawnEndgameTable = squareTable{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{80, 80, 80, 80, 80, 80, 80, 80},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{30, 30, 30, 30, 30, 30, 30, 30},
	{20, 20, 20, 20, 20, 20, 20, 20},
	{10, 10, 10, 10, 10, 10, 10, 10},
	{10, 10, 10, 10, 10, 10, 10, 10},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = squareTable{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var bishopTable = squareTable{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var rookTable = squareTable{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{0, 0, 0, 5, 5, 0, 0, 0},
}

var queenTable = squareTable{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{-10, 0, 5, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
}

var kingTable = squareTable{
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{20, 30, 10, 0, 0, 10, 30, 20},
}

var kingEndgameTable = squareTable{
	{-50, -40, -30, -20, -20, -30, -40, -50},
	{-30, -20, -10, 0, 0, -10, -20, -30},
	{-30, -10, 20, 30, 30, 20, -10, -30},
	{-30, -10, 30, 40, 40, 30, -10, -30},
	{-30, -10, 30, 40, 40, 30, -10, -30},
	{-30, -10, 20, 30, 30, 20, -10, -30},
	{-30, -30, 0, 0, 0, 0, -30, -30},
	{-50, -30, -30, -30, -30, -30, -30, -50},
}

// LocationValue returns the positional bonus for the piece on its square.
// The endgame flag switches the king and pawn tables. Boards of other
// sizes than 8x8 get no positional bonus.
func (p Piece) LocationValue(endgame bool) int {
	if chess.BoardWidth != 8 || chess.BoardHeight != 8 {
		return 0
	}
	table := p.locationTable(endgame)
	if table == nil {
		return 0
	}
	row := chess.BoardHeight - 1 - p.coord.Rank()
	if p.alliance == chess.Black {
		row = p.coord.Rank()
	}
	return table[row][p.coord.File()]
}

func (p Piece) locationTable(endgame bool) *squareTable {
	switch p.kind {
	case chess.Pawn:
		if endgame {
			return &pawnEndgameTable
		}
		return &pawnTable
	case chess.Knight:
		return &knightTable
	case chess.Bishop:
		return &bishopTable
	case chess.Rook:
		return &rookTable
	case chess.Queen:
		return &queenTable
	case chess.King:
		if endgame {
			return &kingEndgameTable
		}
		return &kingTable
	}
	return nil
}
