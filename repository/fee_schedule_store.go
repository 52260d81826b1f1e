package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"pdv-pricing/domain"
)

type MemoryFeeScheduleStore struct {
	mu       sync.Mutex
	schedule *domain.FeeSchedule
}

func NewMemoryFeeScheduleStore() *MemoryFeeScheduleStore {
	return &MemoryFeeScheduleStore{}
}

func (s *MemoryFeeScheduleStore) Load(_ context.Context) (domain.FeeSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == nil {
		return domain.FeeSchedule{}, ErrNotFound
	}
	return *s.schedule, nil
}

func (s *MemoryFeeScheduleStore) Save(_ context.Context, schedule domain.FeeSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schedule = &schedule
	return nil
}

// FileFeeScheduleStore keeps the schedule as a JSON document on disk.
type FileFeeScheduleStore struct {
	mu   sync.Mutex
	path string
}

func NewFileFeeScheduleStore(path string) *FileFeeScheduleStore {
	return &FileFeeScheduleStore{path: path}
}

func (s *FileFeeScheduleStore) Load(_ context.Context) (domain.FeeSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.FeeSchedule{}, ErrNotFound
	}
	if err != nil {
		return domain.FeeSchedule{}, fmt.Errorf("read fee schedule: %w", err)
	}

	return decodeFeeSchedule(data, s.path)
}

// Save writes to a temporary file in the same directory and renames it over the target.
func (s *FileFeeScheduleStore) Save(_ context.Context, schedule domain.FeeSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fee schedule: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".fee-schedule-*")
	if err != nil {
		return fmt.Errorf("write fee schedule: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write fee schedule: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write fee schedule: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write fee schedule: %w", err)
	}
	return nil
}

type RedisFeeScheduleStore struct {
	client *redis.Client
	key    string
}

func NewRedisFeeScheduleStore(client *redis.Client, key string) *RedisFeeScheduleStore {
	return &RedisFeeScheduleStore{client: client, key: key}
}

func (s *RedisFeeScheduleStore) Load(ctx context.Context) (domain.FeeSchedule, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.FeeSchedule{}, ErrNotFound
	}
	if err != nil {
		return domain.FeeSchedule{}, fmt.Errorf("load fee schedule: %w", err)
	}

	return decodeFeeSchedule(data, "redis key "+s.key)
}

func (s *RedisFeeScheduleStore) Save(ctx context.Context, schedule domain.FeeSchedule) error {
	data, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encode fee schedule: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save fee schedule: %w", err)
	}
	return nil
}

// decodeFeeSchedule is shared by the file and Redis stores; source names where data came from.
func decodeFeeSchedule(data []byte, source string) (domain.FeeSchedule, error) {
	var schedule domain.FeeSchedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return domain.FeeSchedule{}, fmt.Errorf("decode fee schedule %s: %w", source, err)
	}
	return schedule, nil
}
