package redisstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Connect opens a client to addr and checks that the server answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, errors.WithMessagef(err, "ping redis at '%s'", addr)
	}
	return cli, nil
}
