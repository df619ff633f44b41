package domain

import (
	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrEmptyMessage     = errors.New("empty message")
	ErrInvalidMessage   = errors.New("invalid message")
)

const (
	ClientUuidHeader = "X-Client-Key"
	ModeQueryParam   = "mode"
)

type messageType byte

const (
	StartGame = messageType(iota)
	PlaceShip
	ToggleOrientation
	Attack
	StateUpdate
	AttackResult
	TurnForfeited
	ActionRejected
	GameOver
	Walkover
)

type Message struct {
	Type    messageType
	Payload any
}

type StartGamePayload struct {
	GameUuid string
	Side     engine.Side
	Mode     Mode
	Rules    engine.Rules
	View     BoardView
}

// CellPayload addresses a cell for PlaceShip and Attack messages.
type CellPayload struct {
	X int
	Y int
}

type StateUpdatePayload struct {
	View BoardView
}

type AttackResultPayload struct {
	Attacker engine.Side
	X        int
	Y        int
	Outcome  string
}

type TurnForfeitedPayload struct {
	Side engine.Side
}

type ActionRejectedPayload struct {
	Reason string
}

type GameOverPayload struct {
	Winner     engine.Side
	GameResult string
}

type WalkoverPayload struct {
	GameResult string
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}
