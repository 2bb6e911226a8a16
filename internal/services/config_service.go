package services

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

// ConfigService resolves the public client configuration once and caches
// it. Concurrent first-time callers share a single in-flight resolution;
// a failed resolution is not cached, so a later call may still succeed.
type ConfigService interface {
	ClientConfig() (dto.ClientConfig, error)
}

// ConfigResolver produces the client configuration. In production it reads
// the process configuration; tests inject failing or counting resolvers.
type ConfigResolver func() (dto.ClientConfig, error)

type configService struct {
	resolve ConfigResolver

	group  singleflight.Group
	mu     sync.RWMutex
	cached *dto.ClientConfig
}

func NewConfigService(resolve ConfigResolver) ConfigService {
	return &configService{resolve: resolve}
}

// StaticConfigResolver wraps an already-known configuration, failing with
// a distinguishable error when it is incomplete.
func StaticConfigResolver(backendURL, anonKey string) ConfigResolver {
	return func() (dto.ClientConfig, error) {
		if backendURL == "" {
			return dto.ClientConfig{}, apperrors.NewNotConfiguredError("config", "backend URL is not configured")
		}
		return dto.ClientConfig{
			BackendURL:     backendURL,
			BackendAnonKey: anonKey,
		}, nil
	}
}

func (s *configService) ClientConfig() (dto.ClientConfig, error) {
	s.mu.RLock()
	if s.cached != nil {
		cfg := *s.cached
		s.mu.RUnlock()
		return cfg, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("client_config", func() (interface{}, error) {
		cfg, err := s.resolve()
		if err != nil {
			// Do not poison the cache; the next call retries.
			return nil, err
		}

		s.mu.Lock()
		s.cached = &cfg
		s.mu.Unlock()
		return cfg, nil
	})
	if err != nil {
		return dto.ClientConfig{}, err
	}
	return v.(dto.ClientConfig), nil
}
