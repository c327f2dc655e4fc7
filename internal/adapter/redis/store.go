package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/escalopa/tajweed-coach/internal/domain"
)

const (
	stateKeyPrefix   = "fsm:state:"
	dataKeyPrefix    = "fsm:data:"
	summaryKeyPrefix = "summaries:"
	verseKeyPrefix   = "verse:"

	defaultTTL = 24 * time.Hour

	// maxSummaries bounds the per-user history list.
	maxSummaries = 50
)

// Store is the redis-backed session store: FSM state, session data,
// analysis history, and a canonical-verse cache.
type Store struct {
	client *redis.Client
}

func NewStore(uri string) (*Store, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis URI: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// SetState sets the current state for a user
func (s *Store) SetState(ctx context.Context, userID string, state domain.State) error {
	key := stateKeyPrefix + userID
	return s.client.Set(ctx, key, string(state), defaultTTL).Err()
}

// GetState gets the current state for a user
func (s *Store) GetState(ctx context.Context, userID string) (domain.State, error) {
	key := stateKeyPrefix + userID
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return domain.StateStart, nil
	}
	if err != nil {
		return "", fmt.Errorf("get state: %w", err)
	}
	return domain.State(val), nil
}

// DeleteState deletes the state for a user
func (s *Store) DeleteState(ctx context.Context, userID string) error {
	key := stateKeyPrefix + userID
	return s.client.Del(ctx, key).Err()
}

// SetData sets temporary data for a user's current session
func (s *Store) SetData(ctx context.Context, userID, key, value string) error {
	dataKey := fmt.Sprintf("%s%s:%s", dataKeyPrefix, userID, key)
	return s.client.Set(ctx, dataKey, value, defaultTTL).Err()
}

// GetData gets temporary data for a user's current session
func (s *Store) GetData(ctx context.Context, userID, key string) (string, error) {
	dataKey := fmt.Sprintf("%s%s:%s", dataKeyPrefix, userID, key)
	val, err := s.client.Get(ctx, dataKey).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("data not found")
	}
	if err != nil {
		return "", fmt.Errorf("get data: %w", err)
	}
	return val, nil
}

// DeleteData deletes temporary data for a user
func (s *Store) DeleteData(ctx context.Context, userID, key string) error {
	dataKey := fmt.Sprintf("%s%s:%s", dataKeyPrefix, userID, key)
	return s.client.Del(ctx, dataKey).Err()
}

// SaveSummary prepends an analysis summary to the user's history list,
// trimming it to the retention bound.
func (s *Store) SaveSummary(ctx context.Context, userID string, stored domain.StoredSummary) error {
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	key := summaryKeyPrefix + userID
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxSummaries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push summary: %w", err)
	}
	return nil
}

// ListSummaries returns up to limit most recent summaries, newest first.
func (s *Store) ListSummaries(ctx context.Context, userID string, limit int) ([]domain.StoredSummary, error) {
	if limit <= 0 || limit > maxSummaries {
		limit = maxSummaries
	}

	key := summaryKeyPrefix + userID
	items, err := s.client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}

	summaries := make([]domain.StoredSummary, 0, len(items))
	for _, item := range items {
		var stored domain.StoredSummary
		if err := json.Unmarshal([]byte(item), &stored); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
		summaries = append(summaries, stored)
	}

	return summaries, nil
}

// VerseText returns a cached canonical verse text, or "" on cache miss.
func (s *Store) VerseText(ctx context.Context, ayahID string) (string, error) {
	val, err := s.client.Get(ctx, verseKeyPrefix+ayahID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get verse: %w", err)
	}
	return val, nil
}

// SetVerseText caches a canonical verse text. Verse text never changes, so
// no TTL is applied.
func (s *Store) SetVerseText(ctx context.Context, ayahID, text string) error {
	return s.client.Set(ctx, verseKeyPrefix+ayahID, text, 0).Err()
}
