package redisstore

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	sessionKeyPrefix = "session:"
	scanBatchSize    = 100
)

type sessionRepository struct {
	cli *redis.Client
	ttl time.Duration
}

// NewSessionRepository stores session records as JSON. Every save refreshes
// the record's ttl, so only sessions nobody syncs anymore expire.
func NewSessionRepository(cli *redis.Client, ttl time.Duration) sessionRepository {
	return sessionRepository{
		cli: cli,
		ttl: ttl,
	}
}

func (r sessionRepository) Save(ctx context.Context, record domain.SessionRecord) error {
	data, err := jsoniter.Marshal(record)
	if err != nil {
		return errors.WithMessage(err, "marshal session record")
	}
	if err := r.cli.Set(ctx, sessionKeyPrefix+record.Uuid, data, r.ttl).Err(); err != nil {
		return errors.WithMessage(err, "set session record")
	}
	return nil
}

func (r sessionRepository) Get(ctx context.Context, uuid string) (domain.SessionRecord, error) {
	data, err := r.cli.Get(ctx, sessionKeyPrefix+uuid).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return domain.SessionRecord{}, errors.WithMessagef(ErrSessionNotFound, "'%s'", uuid)
	case err != nil:
		return domain.SessionRecord{}, errors.WithMessage(err, "get session record")
	}
	var record domain.SessionRecord
	if err := jsoniter.Unmarshal(data, &record); err != nil {
		return domain.SessionRecord{}, errors.WithMessage(err, "unmarshal session record")
	}
	return record, nil
}

// List returns every stored session. Records that expire while the keys
// are scanned are skipped.
func (r sessionRepository) List(ctx context.Context) ([]domain.SessionRecord, error) {
	var records []domain.SessionRecord
	iter := r.cli.Scan(ctx, 0, sessionKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		uuid := iter.Val()[len(sessionKeyPrefix):]
		record, err := r.Get(ctx, uuid)
		switch {
		case errors.Is(err, ErrSessionNotFound):
			continue
		case err != nil:
			return nil, errors.WithMessage(err, "get listed session")
		}
		records = append(records, record)
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WithMessage(err, "scan session keys")
	}
	return records, nil
}

func (r sessionRepository) Delete(ctx context.Context, uuid string) error {
	if err := r.cli.Del(ctx, sessionKeyPrefix+uuid).Err(); err != nil {
		return errors.WithMessage(err, "delete session record")
	}
	return nil
}
