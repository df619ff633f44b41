package game

import (
	"context"
	"sync"

	"github.com/kiryu-dev/battleship/internal/domain"
)

type fakeClient struct {
	uuid string
	mu   sync.Mutex
	sent []domain.Message
}

func newFakeClient(uuid string) *fakeClient {
	return &fakeClient{uuid: uuid}
}

func (c *fakeClient) WriteMessage(msg domain.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeClient) ReadMessage() (domain.Message, error) {
	return domain.Message{}, domain.ErrConnectionClosed
}

func (c *fakeClient) Uuid() string {
	return c.uuid
}

func (c *fakeClient) messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]domain.Message, len(c.sent))
	copy(result, c.sent)
	return result
}

// payloadsOf returns the payloads of type P sent to the client, in order.
func payloadsOf[P any](c *fakeClient) []P {
	var result []P
	for _, msg := range c.messages() {
		if p, ok := msg.Payload.(P); ok {
			result = append(result, p)
		}
	}
	return result
}

type fakeStats struct {
	mu     sync.Mutex
	wins   map[string]int64
	losses map[string]int64
}

func newFakeStats() *fakeStats {
	return &fakeStats{
		wins:   make(map[string]int64),
		losses: make(map[string]int64),
	}
}

func (s *fakeStats) AddWin(_ context.Context, playerUuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins[playerUuid]++
	return nil
}

func (s *fakeStats) AddLoss(_ context.Context, playerUuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.losses[playerUuid]++
	return nil
}

func (s *fakeStats) Get(_ context.Context, playerUuid string) (domain.PlayerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.PlayerStats{Wins: s.wins[playerUuid], Losses: s.losses[playerUuid]}, nil
}

func (s *fakeStats) result(playerUuid string) domain.PlayerStats {
	stats, _ := s.Get(context.Background(), playerUuid)
	return stats
}
