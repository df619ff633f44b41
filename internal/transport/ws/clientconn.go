package ws

import (
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
)

type client struct {
	conn *websocket.Conn
	uuid string
}

func newClient(conn *websocket.Conn, uuid string) client {
	return client{conn: conn, uuid: uuid}
}

func (c client) Uuid() string {
	return c.uuid
}

func (c client) WriteMessage(msg domain.Message) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return errors.WithMessage(err, "marshal message")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WithMessage(err, "websocket conn write message")
	}
	return nil
}

// ReadMessage wraps ErrConnectionClosed when the connection is unusable and
// ErrInvalidMessage when a frame is not a message.
func (c client) ReadMessage() (domain.Message, error) {
	_, r, err := c.conn.NextReader()
	if err != nil {
		return domain.Message{}, errors.WithMessage(domain.ErrConnectionClosed, err.Error())
	}
	var msg domain.Message
	if err := jsoniter.NewDecoder(r).Decode(&msg); err != nil {
		return domain.Message{}, errors.WithMessagef(domain.ErrInvalidMessage, "decode json: %v", err)
	}
	return msg, nil
}

func (c client) Close() {
	_ = c.conn.Close()
}
