package composer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryStore keeps drafts in process memory.  Drafts are copied in and
// out so callers never share state with the store.  Like RedisStore, a
// draft not written for ttl is gone; a non-positive ttl keeps drafts until
// they are saved or cancelled.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	drafts map[string]memoryEntry
}

type memoryEntry struct {
	draft   *Draft
	expires time.Time // zero when the draft never expires
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, drafts: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.drafts, id)
		return nil, ErrDraftNotFound
	}
	return e.draft.clone(), nil
}

// Put stores d and restarts its expiry.  Expired drafts of other ids are
// dropped on the way so abandoned ones do not pile up.
func (s *MemoryStore) Put(_ context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.drafts {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(s.drafts, id)
		}
	}
	e := memoryEntry{draft: d.clone()}
	if s.ttl > 0 {
		e.expires = now.Add(s.ttl)
	}
	s.drafts[d.ID] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

// RedisStore keeps drafts as JSON values under "draft:<id>" with a TTL,
// so that an abandoned draft eventually disappears on its own.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore constructs a RedisStore.  A non-positive ttl keeps drafts
// until they are saved or cancelled.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func draftKey(id string) string { return "draft:" + id }

func (s *RedisStore) Get(ctx context.Context, id string) (*Draft, error) {
	raw, err := s.rdb.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	if d.Items == nil {
		d.Items = []LineItem{}
	}
	return &d, nil
}

func (s *RedisStore) Put(ctx context.Context, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.Set(ctx, draftKey(d.ID), raw, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, draftKey(id)).Err()
}
