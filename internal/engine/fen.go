package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a board from a FEN string. FEN carries no first-move
// flags, so they are inferred: pawns on their starting rank have not
// moved, kings and rooks have not moved when a castling right names them,
// and other pieces have not moved when they stand on their back rank.
// The halfmove clock and fullmove number are accepted and ignored.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	bl := NewBuilder()
	if err := parsePiecePositions(bl, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(bl, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(bl, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(bl, parts); err != nil {
		return nil, err
	}

	b, err := bl.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidFEN, err)
	}
	return b, nil
}

// MustParseFEN is like ParseFEN but panics on error. Use it for positions
// fixed in source code.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(bl *Builder, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardHeight {
		return &errors.PositionError{
			Err:      errors.ErrInvalidFEN,
			Field:    "placement",
			Expected: fmt.Sprintf("%d ranks", chess.BoardHeight),
			Got:      fmt.Sprint(len(ranks)),
		}
	}

	for i, row := range ranks {
		rank := chess.BoardHeight - 1 - i
		file := 0
		for _, c := range row {
			if c >= '1' && c <= '9' {
				file += int(c - '0')
				continue
			}
			kind := chess.PieceTypeFromLetter(byte(c))
			if kind == chess.Empty {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			coord, err := chess.NewCoordinate(file, rank)
			if err != nil {
				return fmt.Errorf("rank %d overflows: %w", rank+1, errors.ErrInvalidFEN)
			}
			alliance := chess.White
			if c >= 'a' && c <= 'z' {
				alliance = chess.Black
			}
			bl.SetPiece(Piece{kind: kind, alliance: alliance, coord: coord, firstMove: inferFirstMove(kind, alliance, coord)})
			file++
		}
		if file != chess.BoardWidth {
			return &errors.PositionError{
				Err:      errors.ErrInvalidFEN,
				Field:    "placement",
				Square:   fmt.Sprintf("rank %d", rank+1),
				Expected: fmt.Sprintf("%d files", chess.BoardWidth),
				Got:      fmt.Sprint(file),
			}
		}
	}
	return nil
}

func inferFirstMove(kind chess.PieceType, alliance chess.Alliance, c chess.Coordinate) bool {
	switch kind {
	case chess.Pawn:
		return c.Rank() == alliance.PawnRank()
	case chess.King, chess.Rook:
		return false
	}
	return c.Rank() == alliance.BackRank()
}

// parseSideToMove parses the side to move field.
func parseSideToMove(bl *Builder, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		bl.SetMoveMaker(chess.White)
	case "b":
		bl.SetMoveMaker(chess.Black)
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights marks the king and the named corner rook as unmoved
// for each right. A right whose king or rook is missing is an error.
func parseCastlingRights(bl *Builder, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}
	for _, c := range parts[2] {
		var alliance chess.Alliance
		var rookFile int
		switch c {
		case 'K':
			alliance, rookFile = chess.White, chess.BoardWidth-1
		case 'Q':
			alliance, rookFile = chess.White, 0
		case 'k':
			alliance, rookFile = chess.Black, chess.BoardWidth-1
		case 'q':
			alliance, rookFile = chess.Black, 0
		default:
			return fmt.Errorf("invalid castling right: %c: %w", c, errors.ErrInvalidFEN)
		}
		if !bl.markUnmoved(chess.Rook, alliance, chess.MustCoordinate(rookFile, alliance.BackRank())) {
			return fmt.Errorf("castling right %c without rook: %w", c, errors.ErrInvalidFEN)
		}
		if !bl.markKingUnmoved(alliance) {
			return fmt.Errorf("castling right %c without king on back rank: %w", c, errors.ErrInvalidFEN)
		}
	}
	return nil
}

func (bl *Builder) markUnmoved(kind chess.PieceType, alliance chess.Alliance, c chess.Coordinate) bool {
	p := bl.tiles[c.Index()]
	if p.kind != kind || p.alliance != alliance {
		return false
	}
	p.firstMove = true
	bl.tiles[c.Index()] = p
	return true
}

func (bl *Builder) markKingUnmoved(alliance chess.Alliance) bool {
	for file := 0; file < chess.BoardWidth; file++ {
		if bl.markUnmoved(chess.King, alliance, chess.MustCoordinate(file, alliance.BackRank())) {
			return true
		}
	}
	return false
}

// parseEnPassant converts the en-passant target square into the pawn that
// jumped past it.
func parseEnPassant(bl *Builder, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	target, err := chess.ParseCoordinate(parts[3])
	if err != nil {
		return fmt.Errorf("en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}
	jumper := bl.moveMaker.Opponent()
	at, ok := target.Step(0, jumper.Direction())
	if !ok {
		return fmt.Errorf("en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}
	pawn := bl.tiles[at.Index()]
	if pawn.kind != chess.Pawn || pawn.alliance != jumper {
		return &errors.PositionError{
			Err:      errors.ErrInvalidFEN,
			Field:    "en passant",
			Square:   parts[3],
			Expected: jumper.String() + " pawn on " + at.String(),
		}
	}
	bl.SetEnPassantPawn(pawn)
	return nil
}

// FEN returns the FEN string of the board. Clocks are not tracked, so the
// last two fields are always "0 1".
func (b *Board) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, b)
	sb.WriteByte(' ')
	writeSideToMove(&sb, b)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, b)
	sb.WriteByte(' ')
	writeEnPassant(&sb, b)
	sb.WriteString(" 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, b *Board) {
	for rank := chess.BoardHeight - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardWidth; file++ {
			p := b.tiles[rank*chess.BoardWidth+file]
			if p.isNone() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				fmt.Fprint(sb, emptyCount)
				emptyCount = 0
			}
			sb.WriteByte(p.Letter())
		}
		if emptyCount > 0 {
			fmt.Fprint(sb, emptyCount)
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, b *Board) {
	if b.moveMaker == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes a right for every unmoved king with an
// unmoved rook in the matching corner.
func writeCastlingRights(sb *strings.Builder, b *Board) {
	hasCastling := false
	for _, a := range []chess.Alliance{chess.White, chess.Black} {
		king, ok := b.King(a)
		if !ok || !king.firstMove || king.coord.Rank() != a.BackRank() {
			continue
		}
		for _, side := range []struct {
			file   int
			letter byte
		}{{chess.BoardWidth - 1, 'K'}, {0, 'Q'}} {
			rook := b.tiles[chess.MustCoordinate(side.file, a.BackRank()).Index()]
			if rook.kind == chess.Rook && rook.alliance == a && rook.firstMove {
				sb.WriteByte(chess.PieceLetter(chess.PieceTypeFromLetter(side.letter), a))
				hasCastling = true
			}
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square behind the en-passant pawn.
func writeEnPassant(sb *strings.Builder, b *Board) {
	pawn, ok := b.EnPassantPawn()
	if !ok {
		sb.WriteByte('-')
		return
	}
	target, ok := pawn.coord.Step(0, -pawn.alliance.Direction())
	if !ok {
		sb.WriteByte('-')
		return
	}
	sb.WriteString(target.String())
}
