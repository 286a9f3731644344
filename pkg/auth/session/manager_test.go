package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

type mockKeyer struct{}

func (mockKeyer) AccessSessionKey(accessID string) string {
	return "lc:session:access:" + accessID
}

func newTestManager() (*Manager, *mockStore) {
	store := newMockStore()
	return &Manager{store: store, keyer: mockKeyer{}, ttl: time.Minute}, store
}

func TestCreateAndHasSession(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.Create(ctx, "access-1", "user-1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := mgr.HasSession(ctx, "access-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatal("expected session to exist")
	}
}

func TestHasSessionMissing(t *testing.T) {
	mgr, _ := newTestManager()

	ok, err := mgr.HasSession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatal("expected no session")
	}
}

func TestRevokeRemovesSession(t *testing.T) {
	mgr, store := newTestManager()
	ctx := context.Background()

	if err := mgr.Create(ctx, "access-2", "user-2"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mgr.Revoke(ctx, "access-2"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	store.mu.Lock()
	_, exists := store.data["lc:session:access:access-2"]
	store.mu.Unlock()
	if exists {
		t.Fatal("expected session to be deleted")
	}

	ok, err := mgr.HasSession(ctx, "access-2")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatal("expected revoked session to be gone")
	}
}

func TestEmptyAccessIDRejected(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.Create(ctx, " ", "user"); err == nil {
		t.Fatal("expected create to reject blank access id")
	}
	if _, err := mgr.HasSession(ctx, ""); err == nil {
		t.Fatal("expected has session to reject blank access id")
	}
	if err := mgr.Revoke(ctx, ""); err == nil {
		t.Fatal("expected revoke to reject blank access id")
	}
}
