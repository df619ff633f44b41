package domain

import (
	"context"
	"sync"
	"time"

	"github.com/kiryu-dev/battleship/internal/computer"
	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/pkg/errors"
)

var (
	ErrUnknownMode   = errors.New("unknown game mode")
	ErrUnknownStatus = errors.New("unknown session status")
)

type Mode string

const (
	// ModeOnline pairs two clients against each other.
	ModeOnline = Mode("online")
	// ModeComputer plays a single client against the computer on side B.
	ModeComputer = Mode("computer")
	// ModeLocal lets a single client play both sides in turn.
	ModeLocal = Mode("local")
)

func ParseMode(v string) (Mode, error) {
	switch Mode(v) {
	case "", ModeOnline:
		return ModeOnline, nil
	case ModeComputer:
		return ModeComputer, nil
	case ModeLocal:
		return ModeLocal, nil
	default:
		return "", errors.WithMessagef(ErrUnknownMode, "'%s'", v)
	}
}

type status byte

const (
	Waiting = status(iota)
	Playing
	Finished
	Abandoned
)

func (s status) Over() bool {
	return s == Finished || s == Abandoned
}

func (s status) valid() bool {
	return s <= Abandoned
}

type Session struct {
	Uuid           string
	Mode           Mode
	Player1        string
	Player2        string
	Status         status
	State          engine.GameState
	Memory         computer.TargetingMemory
	WalkoverWinner engine.Side
	UpdatedAt      time.Time
}

func NewSession(uuid string, mode Mode, rules engine.Rules) Session {
	return Session{
		Uuid:           uuid,
		Mode:           mode,
		Status:         Waiting,
		State:          engine.NewGameState(rules),
		WalkoverWinner: engine.NoSide,
		UpdatedAt:      time.Now(),
	}
}

func (s Session) PlayerUuid(side engine.Side) string {
	switch side {
	case engine.SideA:
		return s.Player1
	case engine.SideB:
		return s.Player2
	default:
		return ""
	}
}

// SideOf returns the side a client plays in this session.
func (s Session) SideOf(clientUuid string) (engine.Side, bool) {
	switch clientUuid {
	case "":
		return engine.NoSide, false
	case s.Player1:
		return engine.SideA, true
	case s.Player2:
		return engine.SideB, true
	default:
		return engine.NoSide, false
	}
}

// HumanSides lists the sides played by connected clients.
func (s Session) HumanSides() []engine.Side {
	switch s.Mode {
	case ModeOnline:
		return []engine.Side{engine.SideA, engine.SideB}
	default:
		return []engine.Side{engine.SideA}
	}
}

// SessionRecord is the storage and replication form of a Session.
type SessionRecord struct {
	Uuid           string                   `json:"uuid"`
	Mode           Mode                     `json:"mode"`
	Player1        string                   `json:"player1"`
	Player2        string                   `json:"player2,omitempty"`
	Status         status                   `json:"status"`
	State          engine.Snapshot          `json:"state"`
	Memory         computer.TargetingMemory `json:"memory"`
	WalkoverWinner string                   `json:"walkover_winner,omitempty"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func (s Session) Record() SessionRecord {
	return SessionRecord{
		Uuid:           s.Uuid,
		Mode:           s.Mode,
		Player1:        s.Player1,
		Player2:        s.Player2,
		Status:         s.Status,
		State:          engine.ToSnapshot(s.State),
		Memory:         s.Memory,
		WalkoverWinner: s.WalkoverWinner.String(),
		UpdatedAt:      s.UpdatedAt,
	}
}

func RestoreSession(rec SessionRecord) (Session, error) {
	mode, err := ParseMode(string(rec.Mode))
	if err != nil {
		return Session{}, errors.WithMessage(err, "parse mode")
	}
	if !rec.Status.valid() {
		return Session{}, errors.WithMessagef(ErrUnknownStatus, "%d", rec.Status)
	}
	state, err := engine.FromSnapshot(rec.State)
	if err != nil {
		return Session{}, errors.WithMessage(err, "restore game state")
	}
	walkover, err := engine.ParseSide(rec.WalkoverWinner)
	if err != nil {
		return Session{}, errors.WithMessage(err, "parse walkover winner")
	}
	return Session{
		Uuid:           rec.Uuid,
		Mode:           mode,
		Player1:        rec.Player1,
		Player2:        rec.Player2,
		Status:         rec.Status,
		State:          state,
		Memory:         rec.Memory,
		WalkoverWinner: walkover,
		UpdatedAt:      rec.UpdatedAt,
	}, nil
}

// Match ties a session to the referee playing it. The referee is the only
// writer of the session; everybody else reads published copies.
type Match struct {
	Actions chan Action
	Joins   chan Player
	Done    chan struct{}

	mu      *sync.RWMutex
	session Session
}

func NewMatch(session Session) *Match {
	return &Match{
		Actions: make(chan Action),
		Joins:   make(chan Player),
		Done:    make(chan struct{}),
		mu:      &sync.RWMutex{},
		session: session,
	}
}

func (m *Match) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *Match) Publish(session Session) {
	m.mu.Lock()
	m.session = session
	m.mu.Unlock()
}

// Action is a message read from a player. Err wraps ErrConnectionClosed when
// the player's connection is gone.
type Action struct {
	Player  Player
	Message Message
	Err     error
}

type GameUseCase interface {
	Play(ctx context.Context, match *Match) error
}
