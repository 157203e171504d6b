package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/processing"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	White       string     `json:"white,omitempty"`
	Black       string     `json:"black,omitempty"`
	Moves       []JSONMove `json:"moves,omitempty"`
	Result      string     `json:"result"`
	Termination string     `json:"termination,omitempty"`
	PlyCount    int        `json:"plyCount"`
	Captures    int        `json:"captures"`
	Checks      int        `json:"checks"`
	FinalFEN    string     `json:"finalFEN"`
	InitialFEN  string     `json:"initialFEN,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	Ply       int    `json:"ply"`
	Color     string `json:"color"` // "white" or "black"
	UCI       string `json:"uci"`
	From      string `json:"from"`
	To        string `json:"to"`
	Piece     string `json:"piece"`
	Kind      string `json:"kind"`
	Captured  string `json:"captured,omitempty"`
	Promotion string `json:"promotion,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// OutputGameJSON outputs a single game in JSON format.
func OutputGameJSON(rec *processing.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(rec))
}

// GameToJSON converts a record to its JSON form.
func GameToJSON(rec *processing.Record) *JSONGame {
	analysis := processing.AnalyzeGame(rec)
	g := &JSONGame{
		White:       rec.White,
		Black:       rec.Black,
		Result:      analysis.Result,
		Termination: string(analysis.Termination),
		PlyCount:    analysis.Plies,
		Captures:    analysis.Captures,
		Checks:      analysis.Checks,
		FinalFEN:    analysis.FinalBoard.FEN(),
	}
	if fen := rec.Start.FEN(); fen != engine.InitialFEN {
		g.InitialFEN = fen
	}
	for i, m := range rec.Moves[:analysis.Plies] {
		g.Moves = append(g.Moves, convertMove(i+1, m))
	}
	return g
}

func convertMove(ply int, m engine.Move) JSONMove {
	jm := JSONMove{
		Ply:   ply,
		Color: colorName(m.Piece().Alliance()),
		UCI:   m.String(),
		From:  m.From().String(),
		To:    m.To().String(),
		Piece: m.Piece().Type().String(),
		Kind:  m.Kind().String(),
	}
	if captured, ok := m.Captured(); ok {
		jm.Captured = captured.Type().String()
	}
	if m.Kind() == engine.Promotion {
		jm.Promotion = m.PromotionType().String()
	}
	return jm
}

func colorName(a chess.Alliance) string {
	if a == chess.White {
		return "white"
	}
	return "black"
}
