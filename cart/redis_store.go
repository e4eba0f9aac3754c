package cart

import (
    "context"
    "fmt"
    "log"
    "time"

    "github.com/go-redis/redis/v8"

    "arbt-storefront-api/models"
)

const cartKeyPrefix = "cart:"

// cartTTL keeps abandoned carts from accumulating forever. Every write
// refreshes the TTL, so an active cart survives indefinitely.
const cartTTL = 30 * 24 * time.Hour

// RedisStore keeps each cart as a single JSON array under cart:<key>.
type RedisStore struct {
    client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
    opt, err := redis.ParseURL(redisURL)
    if err != nil {
        return nil, fmt.Errorf("invalid Redis URL: %v", err)
    }

    client := redis.NewClient(opt)
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := client.Ping(ctx).Err(); err != nil {
        return nil, fmt.Errorf("failed to connect to Redis: %v", err)
    }

    return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient reuses an existing client (shared with the queue).
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
    return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, key string) []models.LineItem {
    raw, err := s.client.Get(ctx, cartKeyPrefix+key).Bytes()
    if err != nil {
        if err != redis.Nil {
            log.Printf("Error reading cart %s: %v", key, err)
        }
        return []models.LineItem{}
    }

    items, ok := decodeItems(raw)
    if !ok {
        log.Printf("Cart %s is corrupted, resetting to empty", key)
        if err := s.Save(ctx, key, nil); err != nil {
            log.Printf("Error resetting corrupted cart %s: %v", key, err)
        }
    }
    return items
}

func (s *RedisStore) Save(ctx context.Context, key string, items []models.LineItem) error {
    if err := s.client.Set(ctx, cartKeyPrefix+key, encodeItems(items), cartTTL).Err(); err != nil {
        return fmt.Errorf("failed to save cart %s: %v", key, err)
    }
    return nil
}

func (s *RedisStore) Close() error {
    return s.client.Close()
}
