package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pymer/churninsight-api/internal/domain"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache é um cache local com TTL opcional (0 = sem expiração) e limite de entradas (0 = sem limite).
// Entradas expiradas são varridas no Set, no máximo uma vez por TTL ou quando o limite é atingido.
type MemoryCache struct {
	mu         sync.RWMutex
	data       map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	lastSweep  time.Time
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: max(maxEntries, 0),
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*domain.RiskAssessment, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if expired(entry.expiresAt, m.now()) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return nil, false
	}

	return decode(entry.value)
}

func (m *MemoryCache) Set(_ context.Context, key string, assessment *domain.RiskAssessment) error {
	value, err := encode(assessment)
	if err != nil {
		return err
	}

	now := m.now()
	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = now.Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.data[key]
	full := !exists && m.maxEntries > 0 && len(m.data) >= m.maxEntries

	if m.ttl > 0 && (full || now.Sub(m.lastSweep) >= m.ttl) {
		m.sweep(now)
		full = !exists && m.maxEntries > 0 && len(m.data) >= m.maxEntries
	}
	if full {
		m.evictOldest()
	}

	m.data[key] = entry
	return nil
}

// sweep remove as entradas expiradas. Deve ser chamado com o lock de escrita.
func (m *MemoryCache) sweep(now time.Time) {
	for key, entry := range m.data {
		if expired(entry.expiresAt, now) {
			delete(m.data, key)
		}
	}
	m.lastSweep = now
}

// evictOldest remove a entrada que expira primeiro; sem TTL qualquer entrada serve.
// Deve ser chamado com o lock de escrita.
func (m *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for key, entry := range m.data {
		if !found || entry.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}

// Len retorna a quantidade de entradas armazenadas
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
