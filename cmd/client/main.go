package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/kiryu-dev/battleship/pkg/utils"
	"github.com/pkg/errors"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	mode := flag.String("mode", string(domain.ModeOnline), "game mode: online, computer or local")
	clientUuid := flag.String("uuid", uuid.NewString(), "client uuid, reuse it to reconnect")
	flag.Parse()

	u := url.URL{
		Scheme:   "ws",
		Host:     *addr,
		Path:     "/game",
		RawQuery: url.Values{domain.ModeQueryParam: []string{*mode}}.Encode(),
	}
	header := http.Header{}
	header.Set(domain.ClientUuidHeader, *clientUuid)
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("dial: " + err.Error())
	}
	defer func() {
		_ = conn.Close()
	}()
	fmt.Printf("client uuid: %s\nwaiting for the game to start...\n", *clientUuid)
	client := newClient(conn)
	if err := client.handleActions(); err != nil {
		log.Fatal(err)
	}
}

type client struct {
	conn    *websocket.Conn
	scanner *bufio.Scanner
	view    domain.BoardView
	mode    domain.Mode
	events  []string
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:    conn,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (c *client) handleActions() error {
	for {
		msg, err := c.readMessage()
		if err != nil {
			return errors.WithMessage(err, "read message")
		}
		switch msg.Type {
		case domain.StartGame:
			v, err := utils.UnmarshalJson[domain.StartGamePayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'StartGamePayload' type")
			}
			c.mode = v.Mode
			c.view = v.View
			c.addEvent(fmt.Sprintf("game %s started, you are %s", v.GameUuid, v.Side))
			if err := c.refresh(); err != nil {
				return err
			}
		case domain.StateUpdate:
			v, err := utils.UnmarshalJson[domain.StateUpdatePayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'StateUpdatePayload' type")
			}
			c.view = v.View
			if err := c.refresh(); err != nil {
				return err
			}
		case domain.AttackResult:
			v, err := utils.UnmarshalJson[domain.AttackResultPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'AttackResultPayload' type")
			}
			c.addEvent(fmt.Sprintf("%s fired at %s: %s", v.Attacker, formatCell(v.X, v.Y), v.Outcome))
		case domain.TurnForfeited:
			v, err := utils.UnmarshalJson[domain.TurnForfeitedPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'TurnForfeitedPayload' type")
			}
			c.addEvent(fmt.Sprintf("%s ran out of time", v.Side))
		case domain.ActionRejected:
			v, err := utils.UnmarshalJson[domain.ActionRejectedPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'ActionRejectedPayload' type")
			}
			c.addEvent("rejected: " + v.Reason)
			if err := c.refresh(); err != nil {
				return err
			}
		case domain.GameOver:
			v, err := utils.UnmarshalJson[domain.GameOverPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'GameOverPayload' type")
			}
			c.view.Phase = engine.PhaseGameOver.String()
			c.printBoards()
			fmt.Println(v.GameResult)
			return nil
		case domain.Walkover:
			v, err := utils.UnmarshalJson[domain.WalkoverPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'WalkoverPayload' type")
			}
			fmt.Println(v.GameResult)
			return nil
		}
	}
}

// refresh redraws the boards and asks for an action when it is our turn.
func (c *client) refresh() error {
	c.printBoards()
	if !c.view.IsYourTurn() {
		fmt.Println("waiting for the opponent...")
		return nil
	}
	msg, err := c.requestAction()
	if err != nil {
		return errors.WithMessage(err, "request action")
	}
	return c.writeMessage(msg)
}

func (c *client) requestAction() (domain.Message, error) {
	placement := c.view.Phase == engine.PhasePlacement.String()
	for {
		if placement {
			fmt.Printf("%s, place a ship (%s) or 'r' to rotate: ", c.view.YourSide, c.view.Orientation)
		} else {
			fmt.Printf("%s, fire at: ", c.view.YourSide)
		}
		if ok := c.scanner.Scan(); !ok {
			if err := c.scanner.Err(); err != nil {
				return domain.Message{}, err
			}
			return domain.Message{}, errors.New("stdin closed")
		}
		input := strings.TrimSpace(c.scanner.Text())
		if placement && strings.EqualFold(input, "r") {
			return domain.Message{Type: domain.ToggleOrientation}, nil
		}
		x, y, err := parseCell(input)
		if err != nil {
			fmt.Println(err)
			continue
		}
		msgType := domain.Attack
		if placement {
			msgType = domain.PlaceShip
		}
		return domain.Message{Type: msgType, Payload: domain.CellPayload{X: x, Y: y}}, nil
	}
}

func (c *client) readMessage() (domain.Message, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return domain.Message{}, errors.WithMessage(err, "websocket conn read message")
	}
	var msg domain.Message
	if err := jsoniter.Unmarshal(data, &msg); err != nil {
		return domain.Message{}, errors.WithMessage(err, "unmarshal message")
	}
	return msg, nil
}

func (c *client) writeMessage(msg domain.Message) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return errors.WithMessage(err, "marshal message")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WithMessage(err, "websocket conn write message")
	}
	return nil
}

const maxEvents = 5

func (c *client) addEvent(event string) {
	c.events = append(c.events, event)
	if len(c.events) > maxEvents {
		c.events = c.events[len(c.events)-maxEvents:]
	}
}
