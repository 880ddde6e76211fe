//go:build integration

// Package containers starts the backing services the integration suites run
// against. Each container is started once per test binary and shared; Ryuk
// removes them when the process exits.
package containers

import (
	"sync"
	"testing"
)

type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	redis    *RedisContainer
	kafka    *KafkaContainer
}

var manager = &Manager{}

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	return manager
}

func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	return lazyStart(&m.mu, &m.postgres, t, NewPostgresContainer)
}

func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	return lazyStart(&m.mu, &m.redis, t, NewRedisContainer)
}

func (m *Manager) GetKafka(t *testing.T) *KafkaContainer {
	t.Helper()
	return lazyStart(&m.mu, &m.kafka, t, NewKafkaContainer)
}

func lazyStart[C any](mu *sync.Mutex, slot **C, t *testing.T, start func(*testing.T) *C) *C {
	mu.Lock()
	defer mu.Unlock()
	if *slot == nil {
		*slot = start(t)
	}
	return *slot
}
