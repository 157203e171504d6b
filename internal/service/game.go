package service

import (
	"sync"

	"github.com/lgbarn/chessai-go/internal/chess"
	"github.com/lgbarn/chessai-go/internal/engine"
)

// Status is the state of play of a game.
type Status string

const (
	StatusActive    Status = "active"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// Over reports whether no further moves can be played.
func (s Status) Over() bool {
	return s == StatusCheckmate || s == StatusStalemate
}

// State is the client view of a game.
type State struct {
	ID         string          `json:"id"`
	FEN        string          `json:"fen"`
	Board      engine.Snapshot `json:"board"`
	Text       string          `json:"text"`
	ToMove     string          `json:"toMove"`
	Status     Status          `json:"status"`
	Winner     string          `json:"winner,omitempty"`
	LegalMoves []string        `json:"legalMoves"`
	History    []string        `json:"history"`
	Engine     string          `json:"engine,omitempty"` // Side played by the engine
	White      string          `json:"white,omitempty"`
	Black      string          `json:"black,omitempty"`
}

// Game is one session. Its board history only ever grows by legal moves
// and shrinks by undo; the current position is the last board.
type Game struct {
	id     string
	white  string
	black  string
	engine *chess.Alliance

	mu       sync.Mutex
	boards   []*engine.Board
	moves    []engine.Move
	recorded bool
	subs     map[int]chan State
	nextSub  int
}

func newGame(id string, start *engine.Board, opts CreateOptions) *Game {
	return &Game{
		id:     id,
		white:  opts.White,
		black:  opts.Black,
		engine: opts.Engine,
		boards: []*engine.Board{start},
		subs:   make(map[int]chan State),
	}
}

// ID returns the session identifier.
func (g *Game) ID() string {
	return g.id
}

func (g *Game) current() *engine.Board {
	return g.boards[len(g.boards)-1]
}

func (g *Game) enginePlays(a chess.Alliance) bool {
	return g.engine != nil && *g.engine == a
}

func (g *Game) push(m engine.Move, next *engine.Board) {
	g.moves = append(g.moves, m)
	g.boards = append(g.boards, next)
}

func (g *Game) pop() {
	g.moves = g.moves[:len(g.moves)-1]
	g.boards = g.boards[:len(g.boards)-1]
}

func statusOf(b *engine.Board) Status {
	p := b.CurrentPlayer()
	switch {
	case p.IsInCheckmate():
		return StatusCheckmate
	case p.IsInStalemate():
		return StatusStalemate
	case p.IsInCheck():
		return StatusCheck
	}
	return StatusActive
}

// state must be called with g.mu held.
func (g *Game) state() State {
	b := g.current()
	st := State{
		ID:         g.id,
		FEN:        b.FEN(),
		Board:      b.Snapshot(),
		Text:       engine.RenderText(b),
		ToMove:     b.MoveMaker().String(),
		Status:     statusOf(b),
		LegalMoves: make([]string, 0, len(b.CurrentPlayer().LegalMoves())),
		History:    make([]string, 0, len(g.moves)),
		White:      g.white,
		Black:      g.black,
	}
	if st.Status == StatusCheckmate {
		st.Winner = b.MoveMaker().Opponent().String()
	}
	for _, m := range b.CurrentPlayer().LegalMoves() {
		st.LegalMoves = append(st.LegalMoves, m.String())
	}
	for _, m := range g.moves {
		st.History = append(st.History, m.String())
	}
	if g.engine != nil {
		st.Engine = g.engine.String()
	}
	return st
}

// publish must be called with g.mu held. Slow subscribers miss updates
// rather than block the game.
func (g *Game) publish() {
	if len(g.subs) == 0 {
		return
	}
	st := g.state()
	for _, ch := range g.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

func (g *Game) subscribe(buffer int) (<-chan State, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextSub
	g.nextSub++
	ch := make(chan State, buffer)
	g.subs[id] = ch
	ch <- g.state()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if c, ok := g.subs[id]; ok {
				delete(g.subs, id)
				close(c)
			}
		})
	}
}

func (g *Game) closeSubscribers() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, ch := range g.subs {
		delete(g.subs, id)
		close(ch)
	}
}
