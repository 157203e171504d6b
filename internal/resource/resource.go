// Package resource names the display assets a front end needs: one image
// per piece type and alliance, a few interface images and the rule text.
// It never decodes images; callers resolve names against their own store.
package resource

import (
	_ "embed"
	"fmt"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/errors"
)

//go:embed rules/tutor.txt
var tutorText string

// Service maps pieces and interface elements to asset names.
type Service interface {
	Asset(t chess.PieceType, a chess.Alliance) (string, error)
	GUIAsset(g GUI) (string, error)
	TutorText() string
}

// GUI identifies a non-piece interface image.
type GUI int

const (
	AppIcon GUI = iota
	HintButton
	UndoButton
	GameStats
	numGUI
)

var guiNames = [numGUI]string{"AppIcon", "HintButton", "UndoButton", "GameStats"}

// String returns the asset base name of g.
func (g GUI) String() string {
	if g < 0 || g >= numGUI {
		return "Unknown"
	}
	return guiNames[g]
}

// ParseGUI looks up a GUI asset by its base name.
func ParseGUI(name string) (GUI, bool) {
	for i, n := range guiNames {
		if n == name {
			return GUI(i), true
		}
	}
	return 0, false
}

// Catalog is the default Service. Piece images are "<root>/<A><P>.png"
// where A is W or B and P is the piece letter; interface images live in
// "<root>/GUI/".
type Catalog struct {
	root   string
	pieces map[chess.Alliance]map[chess.PieceType]string
}

// NewCatalog builds a catalog rooted at root ("images" if empty).
func NewCatalog(root string) *Catalog {
	if root == "" {
		root = "images"
	}
	c := &Catalog{root: root, pieces: make(map[chess.Alliance]map[chess.PieceType]string, 2)}
	for _, a := range []chess.Alliance{chess.White, chess.Black} {
		prefix := "W"
		if a == chess.Black {
			prefix = "B"
		}
		c.pieces[a] = make(map[chess.PieceType]string, 6)
		for t := chess.Pawn; t <= chess.King; t++ {
			c.pieces[a][t] = fmt.Sprintf("%s/%s%c.png", root, prefix, t.Letter())
		}
	}
	return c
}

// Asset implements Service.
func (c *Catalog) Asset(t chess.PieceType, a chess.Alliance) (string, error) {
	name, ok := c.pieces[a][t]
	if !ok {
		return "", errors.Wrapf(errors.ErrUnknownAsset, "%s %s", a, t)
	}
	return name, nil
}

// GUIAsset implements Service.
func (c *Catalog) GUIAsset(g GUI) (string, error) {
	if g < 0 || g >= numGUI {
		return "", errors.Wrapf(errors.ErrUnknownAsset, "gui element %d", int(g))
	}
	return fmt.Sprintf("%s/GUI/%s.png", c.root, guiNames[g]), nil
}

// TutorText implements Service.
func (c *Catalog) TutorText() string {
	return tutorText
}

// PieceAssets returns every piece asset keyed by its FEN letter.
func PieceAssets(s Service) (map[string]string, error) {
	out := make(map[string]string, 12)
	for _, a := range []chess.Alliance{chess.White, chess.Black} {
		for t := chess.Pawn; t <= chess.King; t++ {
			name, err := s.Asset(t, a)
			if err != nil {
				return nil, err
			}
			out[string(chess.PieceLetter(t, a))] = name
		}
	}
	return out, nil
}
