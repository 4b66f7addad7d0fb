package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
)

// MessageType names a websocket message.
type MessageType string

const (
	// Client to server.
	MessageMove    MessageType = "move"
	MessagePromote MessageType = "promote"
	MessageState   MessageType = "state"

	// Server to client.
	EventState   MessageType = "state"
	EventError   MessageType = "error"
	EventDeleted MessageType = "deleted"
)

// Message is a websocket message from a client.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is a websocket message to a client.
type Event struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// ErrorPayload carries a rejected request back to its sender.
type ErrorPayload struct {
	Error string `json:"error"`
}

// DeletedPayload names a game that no longer exists.
type DeletedPayload struct {
	ID string `json:"id"`
}

// HandleMessage carries out one client message for a game. Moves and
// promotions reach every connection of the game through the broadcast;
// a state request is answered on conn only.
func (m *Manager) HandleMessage(ctx context.Context, id string, conn Conn, msg Message) error {
	switch msg.Type {
	case MessageMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("move payload: %w", err)
		}
		_, err := m.Move(ctx, id, req.From, req.To)
		return err

	case MessagePromote:
		var req PromoteRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("promote payload: %w", err)
		}
		_, err := m.Promote(ctx, id, req.Piece)
		return err

	case MessageState:
		state, err := m.State(ctx, id)
		if err != nil {
			return err
		}
		return m.send(ctx, id, conn, Event{Type: EventState, Payload: state})
	}
	return fmt.Errorf("unknown message type %q", msg.Type)
}

// serveConn runs the read loop of one websocket connection to a game.
func (m *Manager) serveConn(c *websocket.Conn) {
	ctx := context.Background()
	id := c.Params("id")

	if err := m.Register(ctx, id, c); err != nil {
		_ = c.WriteJSON(Event{Type: EventError, Payload: ErrorPayload{Error: err.Error()}})
		_ = c.Close()
		return
	}
	defer m.Unregister(ctx, id, c)

	// The new connection starts from the current state.
	if err := m.HandleMessage(ctx, id, c, Message{Type: MessageState}); err != nil {
		return
	}

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		err = json.Unmarshal(data, &msg)
		if err == nil {
			err = m.HandleMessage(ctx, id, c, msg)
		}
		if err != nil {
			fmt.Fprintf(m.log, "game %s: websocket: %v\n", id, err)
			_ = m.send(ctx, id, c, Event{Type: EventError, Payload: ErrorPayload{Error: err.Error()}})
		}
	}
}
