// Package output formats played games and boards as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/config"
	"github.com/lgbarn/chessai-go/internal/engine"
	"github.com/lgbarn/chessai-go/internal/processing"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputGame writes a game as text: header lines, the numbered move list
// and result, then optionally the final board.
func OutputGame(rec *processing.Record, cfg *config.Config, w io.Writer) {
	analysis := processing.AnalyzeGame(rec)

	outputHeader(w, "White", rec.White)
	outputHeader(w, "Black", rec.Black)
	outputHeader(w, "Result", analysis.Result)
	if analysis.Termination != processing.Unterminated {
		outputHeader(w, "Termination", string(analysis.Termination))
	}
	if fen := rec.Start.FEN(); fen != engine.InitialFEN {
		outputHeader(w, "FEN", fen)
	}
	fmt.Fprintln(w)

	outputMoves(rec, analysis.Result, cfg, w)

	if cfg.Output.ShowBoard {
		fmt.Fprintln(w)
		OutputBoard(analysis.FinalBoard, w)
	}
	fmt.Fprintln(w)
}

func outputHeader(w io.Writer, name, value string) {
	if value == "" {
		value = "?"
	}
	fmt.Fprintf(w, "[%s \"%s\"]\n", name, escapeValue(value))
}

// escapeValue escapes special characters in header values.
func escapeValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// outputMoves writes the moves in coordinate notation with move numbers.
// Numbering always starts at 1 from the record's start position.
func outputMoves(rec *processing.Record, result string, cfg *config.Config, w io.Writer) {
	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))

	moveNum := 1
	isWhite := rec.Start.MoveMaker() == chess.White
	for i, m := range rec.Moves {
		if cfg.Output.KeepMoveNumbers {
			if isWhite {
				ow.Write(fmt.Sprintf("%d.", moveNum))
			} else if i == 0 {
				ow.Write(fmt.Sprintf("%d...", moveNum))
			}
		}
		ow.Write(m.String())
		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}
	ow.Write(result)
	ow.NewLine()
}

// OutputBoard writes the board grid followed by its FEN.
func OutputBoard(b *engine.Board, w io.Writer) {
	fmt.Fprint(w, engine.RenderText(b))
	fmt.Fprintln(w, b.FEN())
}

// OutputBoardJSON writes the board snapshot and FEN as indented JSON.
func OutputBoardJSON(b *engine.Board, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		FEN   string          `json:"fen"`
		Board engine.Snapshot `json:"board"`
	}{b.FEN(), b.Snapshot()})
}
