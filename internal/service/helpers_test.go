package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/provalab/prova-api/internal/store"
)

// memStore is an in-memory Store used by the service tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func memKey(owner, entityType, id string) string {
	return entityType + ":" + owner + ":" + id
}

func (s *memStore) Get(_ context.Context, owner, entityType, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[memKey(owner, entityType, id)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return value, nil
}

func (s *memStore) Put(_ context.Context, owner, entityType, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[memKey(owner, entityType, id)] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, owner, entityType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memKey(owner, entityType, id)
	if _, ok := s.data[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.data, key)
	return nil
}

func (s *memStore) List(_ context.Context, owner, entityType string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := entityType + ":" + owner + ":"
	var payloads [][]byte
	for key, value := range s.data {
		if strings.HasPrefix(key, prefix) {
			payloads = append(payloads, value)
		}
	}
	return payloads, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs(prefix string) func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter)
	}
}
