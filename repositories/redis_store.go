package repositories

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/PGV-da/Amazon-Affiliate-Bot/domain"
)

// RedisDedupStore keeps the posted-key set in a Redis set, for deployments
// where the set should outlive the local filesystem. Lookup errors are treated
// as "not posted": availability is preferred over suppression.
type RedisDedupStore struct {
	client *redis.Client
	setKey string
}

func NewRedisDedupStore(addr string) *RedisDedupStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisDedupStore{client: rdb, setKey: domain.RedisKeyPosted}
}

func (s *RedisDedupStore) Contains(ctx context.Context, key string) bool {
	ok, err := s.client.SIsMember(ctx, s.setKey, key).Result()
	if err != nil {
		log.Printf("failed to check posted set for %q: %v", key, err)
		return false
	}
	return ok
}

func (s *RedisDedupStore) Record(ctx context.Context, key string) {
	if err := s.client.SAdd(ctx, s.setKey, key).Err(); err != nil {
		log.Printf("failed to record key %q: %v", key, err)
	}
}

func (s *RedisDedupStore) Close() error {
	return s.client.Close()
}
