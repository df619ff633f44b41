package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const clientQueueBufSize = 16

type enqueuedClient struct {
	client     domain.Client
	resultChan chan seat
	// done is closed once the client stops waiting
	done <-chan struct{}
}

func (c enqueuedClient) gone() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// seat is what a client gets once it has a game to play.
type seat struct {
	match  *domain.Match
	player domain.Player
}

type useCase struct {
	ctx         context.Context
	game        domain.GameUseCase
	rules       engine.Rules
	clientQueue chan enqueuedClient
	matches     map[string]*domain.Match
	// sessions received from peers or the store, started on reconnect
	parked     map[string]domain.SessionRecord
	statesChan chan []domain.SessionRecord
	ticker     *time.Ticker
	mu         *sync.RWMutex
	created    *atomic.Int64
	logger     *zap.Logger
}

// New starts the matchmaking and state publishing loops. Matches are played
// under ctx, so they outlive the connection that started them.
func New(ctx context.Context, game domain.GameUseCase, rules engine.Rules, syncPeriod time.Duration,
	logger *zap.Logger) *useCase {
	u := &useCase{
		ctx:         ctx,
		game:        game,
		rules:       rules,
		clientQueue: make(chan enqueuedClient, clientQueueBufSize),
		matches:     make(map[string]*domain.Match),
		parked:      make(map[string]domain.SessionRecord),
		statesChan:  make(chan []domain.SessionRecord),
		ticker:      time.NewTicker(syncPeriod),
		mu:          &sync.RWMutex{},
		created:     atomic.NewInt64(0),
		logger:      logger,
	}
	go u.createGames()
	go u.syncStates()
	return u
}

// Handle seats the client in a game and forwards its messages to the
// referee until the game is over or the client leaves.
func (u *useCase) Handle(ctx context.Context, client domain.Client, mode domain.Mode) error {
	s, ok := u.continueActiveGame(client)
	if !ok {
		var err error
		s, err = u.newGame(ctx, client, mode)
		if err != nil {
			return errors.WithMessage(err, "new game")
		}
	}
	select {
	case s.match.Joins <- s.player:
	case <-s.match.Done:
		return nil
	case <-ctx.Done():
		return nil
	}
	pumpDone := make(chan struct{})
	go pump(s, pumpDone)
	select {
	case <-s.match.Done:
	case <-pumpDone:
	case <-ctx.Done():
	}
	return nil
}

// pump reads the player's messages and hands them to the referee. It stops
// once the connection is closed or the match is over.
func pump(s seat, done chan struct{}) {
	defer close(done)
	for {
		msg, err := s.player.ReceiveMessage()
		select {
		case s.match.Actions <- domain.Action{Player: s.player, Message: msg, Err: err}:
		case <-s.match.Done:
			return
		}
		if errors.Is(err, domain.ErrConnectionClosed) {
			return
		}
	}
}

func (u *useCase) newGame(ctx context.Context, client domain.Client, mode domain.Mode) (seat, error) {
	switch mode {
	case domain.ModeComputer, domain.ModeLocal:
		session := domain.NewSession(uuid.NewString(), mode, u.rules)
		session.Player1 = client.Uuid()
		match := u.startMatch(session)
		return seat{
			match:  match,
			player: domain.NewPlayer(session.Uuid, client, engine.SideA),
		}, nil
	case domain.ModeOnline:
		return u.enqueueForGame(ctx, client)
	default:
		return seat{}, errors.WithMessagef(domain.ErrUnknownMode, "'%s'", mode)
	}
}

func (u *useCase) enqueueForGame(ctx context.Context, client domain.Client) (seat, error) {
	ch := make(chan seat, 1)
	select {
	case u.clientQueue <- enqueuedClient{client: client, resultChan: ch, done: ctx.Done()}:
	case <-ctx.Done():
		return seat{}, errors.WithMessage(ctx.Err(), "enqueue client")
	}
	select {
	case s := <-ch:
		return s, nil
	case <-ctx.Done():
		return seat{}, errors.WithMessage(ctx.Err(), "wait for opponent")
	}
}

// createGames pairs queued clients in arrival order. Clients that stopped
// waiting are dropped, and a client left without a partner waits for the
// next one.
func (u *useCase) createGames() {
	var waiting *enqueuedClient
	for {
		var next enqueuedClient
		select {
		case next = <-u.clientQueue:
		case <-u.ctx.Done():
			return
		}
		if next.gone() {
			u.logger.Debug("client left the queue", zap.String("client uuid", next.client.Uuid()))
			continue
		}
		if waiting == nil || waiting.gone() {
			waiting = &next
			continue
		}
		lhs, rhs := *waiting, next
		waiting = nil
		session := domain.NewSession(uuid.NewString(), domain.ModeOnline, u.rules)
		session.Player1 = lhs.client.Uuid()
		session.Player2 = rhs.client.Uuid()
		match := u.startMatch(session)
		lhs.resultChan <- seat{match: match, player: domain.NewPlayer(session.Uuid, lhs.client, engine.SideA)}
		rhs.resultChan <- seat{match: match, player: domain.NewPlayer(session.Uuid, rhs.client, engine.SideB)}
	}
}

func (u *useCase) startMatch(session domain.Session) *domain.Match {
	u.mu.Lock()
	match := u.addMatch(session)
	u.mu.Unlock()
	u.play(match)
	return match
}

// addMatch must be called with u.mu held.
func (u *useCase) addMatch(session domain.Session) *domain.Match {
	match := domain.NewMatch(session)
	u.matches[session.Uuid] = match
	u.created.Inc()
	u.logger.Info("game created",
		zap.String("game uuid", session.Uuid),
		zap.String("mode", string(session.Mode)))
	return match
}

func (u *useCase) play(match *domain.Match) {
	go func() {
		if err := u.game.Play(u.ctx, match); err != nil {
			u.logger.Warn("play game", zap.String("game uuid", match.Session().Uuid), zap.Error(err))
		}
	}()
}

func (u *useCase) syncStates() {
	defer u.ticker.Stop()
	for {
		select {
		case <-u.ticker.C:
		case <-u.ctx.Done():
			return
		}
		records := u.collectStates()
		if len(records) == 0 {
			continue
		}
		select {
		case u.statesChan <- records:
		case <-u.ctx.Done():
			return
		}
	}
}

func (u *useCase) GamesStates() <-chan []domain.SessionRecord {
	return u.statesChan
}

// collectStates returns the records of all local sessions. Finished sessions
// are reported once and then forgotten.
func (u *useCase) collectStates() []domain.SessionRecord {
	u.mu.Lock()
	defer u.mu.Unlock()
	records := make([]domain.SessionRecord, 0, len(u.matches))
	for gameUuid, match := range u.matches {
		session := match.Session()
		records = append(records, session.Record())
		if session.Status.Over() {
			delete(u.matches, gameUuid)
		}
	}
	return records
}

// ApplyStates merges the received sessions into the parked ones, keeping the
// newest record per game. A finished record unparks its game. Sessions played
// here are skipped.
func (u *useCase) ApplyStates(_ context.Context, records []domain.SessionRecord) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, rec := range records {
		if _, ok := u.matches[rec.Uuid]; ok {
			continue
		}
		if rec.Status.Over() {
			delete(u.parked, rec.Uuid)
			continue
		}
		if known, ok := u.parked[rec.Uuid]; ok && known.UpdatedAt.After(rec.UpdatedAt) {
			continue
		}
		u.parked[rec.Uuid] = rec
	}
	u.logger.Info("applied states", zap.Int("received", len(records)), zap.Int("parked sessions", len(u.parked)))
}

func (u *useCase) continueActiveGame(client domain.Client) (seat, bool) {
	clientUuid := client.Uuid()
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, match := range u.matches {
		session := match.Session()
		if session.Status.Over() || isDone(match) {
			continue
		}
		if side, ok := session.SideOf(clientUuid); ok {
			u.logger.Info("found active game", zap.String("game uuid", session.Uuid))
			return seat{match: match, player: domain.NewPlayer(session.Uuid, client, side)}, true
		}
	}
	for gameUuid, rec := range u.parked {
		if rec.Player1 != clientUuid && rec.Player2 != clientUuid {
			continue
		}
		delete(u.parked, gameUuid)
		session, err := domain.RestoreSession(rec)
		if err != nil {
			u.logger.Warn("restore session", zap.String("game uuid", gameUuid), zap.Error(err))
			continue
		}
		side, _ := session.SideOf(clientUuid)
		u.logger.Info("resuming game", zap.String("game uuid", gameUuid))
		match := u.addMatch(session)
		u.play(match)
		return seat{match: match, player: domain.NewPlayer(session.Uuid, client, side)}, true
	}
	return seat{}, false
}

func (u *useCase) ActiveSessions() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.matches)
}

func (u *useCase) SessionsCreated() int64 {
	return u.created.Load()
}

func isDone(match *domain.Match) bool {
	select {
	case <-match.Done:
		return true
	default:
		return false
	}
}
