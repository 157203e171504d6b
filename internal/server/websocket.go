package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// MessageType names a websocket message.
type MessageType string

const (
	MessageTypeMove   MessageType = "move"   // client: {"move": "e2e4"}
	MessageTypeEngine MessageType = "engine" // client: let the engine move
	MessageTypeUndo   MessageType = "undo"
	MessageTypeHint   MessageType = "hint"  // client request and server reply
	MessageTypeState  MessageType = "state" // server: game state
	MessageTypeError  MessageType = "error"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(t MessageType, v interface{}) Message {
	payload, err := json.Marshal(v)
	if err != nil {
		payload, _ = json.Marshal(err.Error())
		t = MessageTypeError
	}
	return Message{Type: t, Payload: payload}
}

func errorMessage(err error) Message {
	return newMessage(MessageTypeError, map[string]string{"error": err.Error()})
}

// handleMessage runs one client request. State changes reach the client
// through its subscription, so only hints and errors produce a direct
// reply.
func (s *Server) handleMessage(ctx context.Context, gameID string, msg Message) (Message, bool) {
	var err error
	switch msg.Type {
	case MessageTypeMove:
		var req moveRequest
		if err = json.Unmarshal(msg.Payload, &req); err == nil {
			_, err = s.games.Move(ctx, gameID, req.Move)
		}
	case MessageTypeEngine:
		_, err = s.games.EngineMove(ctx, gameID)
	case MessageTypeUndo:
		_, err = s.games.Undo(gameID)
	case MessageTypeHint:
		mv, herr := s.games.Hint(ctx, gameID)
		if herr == nil {
			return newMessage(MessageTypeHint, map[string]string{"move": mv.String()}), true
		}
		err = herr
	default:
		err = fmt.Errorf("unknown message type: %q", msg.Type)
	}
	if err != nil {
		return errorMessage(err), true
	}
	return Message{}, false
}

// handleConnection streams game states to the client and feeds its
// messages to the session manager until either side closes.
func (s *Server) handleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	states, unsubscribe, err := s.games.Subscribe(gameID)
	if err != nil {
		_ = c.WriteJSON(errorMessage(err))
		_ = c.Close()
		return
	}
	defer unsubscribe()
	s.cfg.Logf(1, "websocket opened for game %s", gameID)

	var writeMu sync.Mutex
	write := func(m Message) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return c.WriteJSON(m)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for st := range states {
			if err := write(newMessage(MessageTypeState, st)); err != nil {
				return
			}
		}
		// Subscription over: the game was deleted or the client left.
		_ = c.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for {
		mt, data, err := c.ReadMessage()
		if err != nil {
			break
		}
		if mt != websocket.TextMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = write(errorMessage(fmt.Errorf("parse message: %w", err)))
			continue
		}
		if reply, ok := s.handleMessage(ctx, gameID, msg); ok {
			if err := write(reply); err != nil {
				break
			}
		}
	}

	unsubscribe()
	<-done
	s.cfg.Logf(1, "websocket closed for game %s", gameID)
}
