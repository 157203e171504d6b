// Package chess provides core chess types: alliances, piece types and
// board geometry. It holds no rules; move generation lives in package engine.
package chess

// Alliance represents one of the two competing sides.
type Alliance int

const (
	White Alliance = iota
	Black
)

// String returns the string representation of an alliance.
func (a Alliance) String() string {
	if a == White {
		return "White"
	}
	return "Black"
}

// Opponent returns the opposing alliance.
func (a Alliance) Opponent() Alliance {
	if a == White {
		return Black
	}
	return White
}

// IsWhite reports whether a is White.
func (a Alliance) IsWhite() bool {
	return a == White
}

// Direction returns +1 for White, -1 for Black (pawn direction along ranks).
func (a Alliance) Direction() int {
	if a == White {
		return 1
	}
	return -1
}

// BackRank returns the rank the alliance's pieces start on.
func (a Alliance) BackRank() int {
	if a == White {
		return 0
	}
	return BoardHeight - 1
}

// PawnRank returns the rank the alliance's pawns start on.
func (a Alliance) PawnRank() int {
	return a.BackRank() + a.Direction()
}

// PromotionRank returns the far rank on which the alliance's pawns promote.
func (a Alliance) PromotionRank() int {
	return a.Opponent().BackRank()
}

// ParseAlliance converts "w"/"white"/"b"/"black" (any case) to an Alliance.
func ParseAlliance(s string) (Alliance, bool) {
	switch s {
	case "w", "W", "white", "White", "WHITE":
		return White, true
	case "b", "B", "black", "Black", "BLACK":
		return Black, true
	}
	return White, false
}

// PieceType represents a chess piece type.
type PieceType int

const (
	Empty PieceType = iota // No piece (vacant tile)
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceTypes
)

var pieceValues = [NumPieceTypes]int{0, 100, 320, 330, 500, 900, 20000}

// String returns the string representation of a piece type.
func (t PieceType) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Letter returns the single upper-case letter for a piece type.
func (t PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if t >= 0 && int(t) < len(letters) {
		return letters[t]
	}
	return '?'
}

// Value returns the material value used by evaluation.
func (t PieceType) Value() int {
	if t < 0 || t >= NumPieceTypes {
		return 0
	}
	return pieceValues[t]
}

// IsSliding reports whether the piece type moves along rays.
func (t PieceType) IsSliding() bool {
	return t == Bishop || t == Rook || t == Queen
}

// PieceTypeFromLetter converts a piece letter (either case) to a PieceType.
// It returns Empty for unknown letters.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return Empty
	}
}

// PieceLetter returns the letter for a piece of the given alliance:
// upper case for White, lower case for Black.
func PieceLetter(t PieceType, a Alliance) byte {
	letter := t.Letter()
	if a == Black && letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	return letter
}
