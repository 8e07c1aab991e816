package session

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/go-redis/redis/v8"
)

// SlotKey is the fixed key under which the serialized identity lives in
// durable storage.
const SlotKey = "fitness_user"

// ErrEmptySlot is returned by Load when no identity has been saved.
var ErrEmptySlot = errors.New("session slot is empty")

// Slot is the single durable key-value pair holding the serialized
// identity. It is read once at startup, written on every successful
// login/register, and cleared on logout.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// --- File slot ---

// FileSlot persists the identity as a single JSON file on disk.
type FileSlot struct {
	mu   sync.Mutex
	path string
}

// NewFileSlot creates a file-backed slot at the given path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (s *FileSlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEmptySlot
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptySlot
	}
	return data, nil
}

func (s *FileSlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Write-then-rename so a crash mid-write never leaves a torn slot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileSlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// --- Redis slot ---

// RedisSlot persists the identity under a fixed Redis key.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot creates a redis-backed slot on the given client.
func NewRedisSlot(client *redis.Client) *RedisSlot {
	return &RedisSlot{client: client, key: SlotKey}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmptySlot
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisSlot) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// --- Memory slot ---

// MemorySlot keeps the identity in process memory. Used by tests and as
// a fallback when no durable backend is configured.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySlot() *MemorySlot { return &MemorySlot{} }

func (s *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrEmptySlot
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemorySlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

func (s *MemorySlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
