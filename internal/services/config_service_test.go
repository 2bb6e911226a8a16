package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"fairway_backend/internal/services/dto"
)

func TestConfigService_ConcurrentCallersShareOneResolution(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})

	svc := NewConfigService(func() (dto.ClientConfig, error) {
		calls.Add(1)
		<-gate
		return dto.ClientConfig{BackendURL: "https://api.local", BackendAnonKey: "anon"}, nil
	})

	const n = 16
	results := make([]dto.ClientConfig, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := svc.ClientConfig()
			assert.NoError(t, err)
			results[i] = cfg
		}(i)
	}

	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "all callers must share one in-flight resolution")
	for _, cfg := range results {
		assert.Equal(t, "https://api.local", cfg.BackendURL)
	}
}

func TestConfigService_CachesAfterFirstSuccess(t *testing.T) {
	var calls atomic.Int32
	svc := NewConfigService(func() (dto.ClientConfig, error) {
		calls.Add(1)
		return dto.ClientConfig{BackendURL: "https://api.local"}, nil
	})

	for i := 0; i < 5; i++ {
		_, err := svc.ClientConfig()
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestConfigService_FailureDoesNotPoisonCache(t *testing.T) {
	var calls atomic.Int32
	svc := NewConfigService(func() (dto.ClientConfig, error) {
		if calls.Add(1) == 1 {
			return dto.ClientConfig{}, errors.New("resolver unavailable")
		}
		return dto.ClientConfig{BackendURL: "https://api.local"}, nil
	})

	_, err := svc.ClientConfig()
	assert.Error(t, err)

	cfg, err := svc.ClientConfig()
	assert.NoError(t, err)
	assert.Equal(t, "https://api.local", cfg.BackendURL)
	assert.Equal(t, int32(2), calls.Load())
}

func TestStaticConfigResolver_MissingURLIsDistinguishable(t *testing.T) {
	_, err := StaticConfigResolver("", "anon")()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestStaticConfigResolver_CarriesAnonKey(t *testing.T) {
	cfg, err := StaticConfigResolver("http://localhost:8080", "anon-key")()
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, "anon-key", cfg.BackendAnonKey)
}
