package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"pdv-pricing/domain"
)

func TestFileFeeScheduleStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileFeeScheduleStore(filepath.Join(t.TempDir(), "fees.json"))

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	schedule := domain.FeeSchedule{
		Version:       7,
		DebitFeeRate:  0.015,
		CreditFeeRate: 0.03,
		UpdatedAt:     time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC),
	}
	schedule.InstallmentRates[11] = 6.5

	if err := store.Save(ctx, schedule); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Version != 7 || loaded.InstallmentRates[11] != 6.5 || !loaded.UpdatedAt.Equal(schedule.UpdatedAt) {
		t.Errorf("unexpected schedule after round trip: %+v", loaded)
	}
}

func TestFileFeeScheduleStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileFeeScheduleStore(path).Load(context.Background())
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestMemoryFeeScheduleStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryFeeScheduleStore()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	store.Save(ctx, domain.FeeSchedule{Version: 3})
	if s, err := store.Load(ctx); err != nil || s.Version != 3 {
		t.Errorf("expected version 3, got %d (err %v)", s.Version, err)
	}
}

func TestDecodeFeeSchedule(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		version int
	}{
		{"valid", `{"version": 4, "debit_fee_rate": 0.02, "installment_rates": [0,0,0,3]}`, false, 4},
		{"truncated", `{"version": 4,`, true, 0},
		{"wrong type", `{"version": "four"}`, true, 0},
		{"not an object", `[1, 2, 3]`, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := decodeFeeSchedule([]byte(tt.data), "redis key pdv:fees:schedule")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected decode error, got %+v", schedule)
				}
				if !strings.Contains(err.Error(), "pdv:fees:schedule") {
					t.Errorf("expected source in error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if schedule.Version != tt.version || schedule.InstallmentRates[3] != 3 {
				t.Errorf("unexpected schedule: %+v", schedule)
			}
		})
	}
}

// unreachableRedis points at a closed local port so every command fails fast.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisFeeScheduleStore_ConnectionFailure(t *testing.T) {
	ctx := context.Background()
	store := NewRedisFeeScheduleStore(unreachableRedis(t), "pdv:fees:schedule")

	_, err := store.Load(ctx)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected a load error distinct from ErrNotFound, got %v", err)
	}
	if err := store.Save(ctx, domain.FeeSchedule{Version: 1}); err == nil {
		t.Error("expected save error")
	}
}

func TestRedisCache_ConnectionFailureIsAMiss(t *testing.T) {
	ctx := context.Background()
	cache := NewRedisCache(unreachableRedis(t), "pdv:")

	if v, ok := cache.Get(ctx, "simulation:v1:10.00:true"); ok {
		t.Errorf("expected a miss, got %q", v)
	}
	if err := cache.Set(ctx, "simulation:v1:10.00:true", "{}", time.Minute); err == nil {
		t.Error("expected set error")
	}
}
