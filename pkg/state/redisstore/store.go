package redisstore

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"jobtion/pkg/state"
)

// keyspace prefixes every key so the store can share a Redis instance.
const keyspace = "jobtion:"

// Store is the Redis-backed snapshot store.
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, keyspace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, keyspace+key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, keyspace+key).Err()
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, keyspace+prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), keyspace))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

var _ state.Store = (*Store)(nil)
