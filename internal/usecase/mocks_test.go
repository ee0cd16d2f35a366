package usecase

import (
	"context"
	"time"

	"github.com/salesai/backend/internal/domain"
)

// MockCompleter is a mock implementation of domain.Completer
type MockCompleter struct {
	text     string
	err      error
	calls    int
	requests []domain.CompletionRequest
}

func (m *MockCompleter) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	m.calls++
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string][]byte
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}
