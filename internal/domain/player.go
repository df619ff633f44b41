package domain

import (
	"github.com/kiryu-dev/battleship/internal/engine"
)

type Player struct {
	uuid      string
	gameUuid  string
	playerCli Client
	side      engine.Side
}

func NewPlayer(gameUuid string, cli Client, side engine.Side) Player {
	return Player{
		uuid:      cli.Uuid(),
		gameUuid:  gameUuid,
		playerCli: cli,
		side:      side,
	}
}

func (p Player) Uuid() string {
	return p.uuid
}

func (p Player) GameUuid() string {
	return p.gameUuid
}

func (p Player) Side() engine.Side {
	return p.side
}

func (p Player) SendMessage(msg Message) error {
	return p.playerCli.WriteMessage(msg)
}

func (p Player) ReceiveMessage() (Message, error) {
	return p.playerCli.ReadMessage()
}

// Same reports whether both values refer to the same connection.
func (p Player) Same(other Player) bool {
	return p.uuid == other.uuid && p.side == other.side && p.playerCli == other.playerCli
}
