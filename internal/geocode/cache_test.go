package geocode

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	name  string
	err   error
	calls atomic.Int64
	gate  chan struct{} // when set, Reverse blocks until the gate closes
}

func (r *stubResolver) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	r.calls.Add(1)
	if r.gate != nil {
		<-r.gate
	}
	return r.name, r.err
}

type fakeStore struct {
	mu      sync.Mutex
	entries map[string]string
	gets    int
	puts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]string)}
}

func (s *fakeStore) Get(ctx context.Context, cellKey string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	name, ok := s.entries[cellKey]
	return name, ok, nil
}

func (s *fakeStore) Put(ctx context.Context, cellKey, placeName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	s.entries[cellKey] = placeName
	return nil
}

func TestCache_ResolveMemoizes(t *testing.T) {
	resolver := &stubResolver{name: "Kérel, Bangor"}
	cache := NewCache(nil)

	for i := 0; i < 5; i++ {
		name, err := cache.Resolve(context.Background(), resolver, 47.31, -3.23)
		require.NoError(t, err)
		assert.Equal(t, "Kérel, Bangor", name)
	}

	assert.Equal(t, int64(1), resolver.calls.Load())
}

func TestCache_SameCellSharesOneLookup(t *testing.T) {
	resolver := &stubResolver{name: "Kérel, Bangor"}
	cache := NewCache(nil)

	// Two coordinates rounding to the same 4-decimal cell
	_, err := cache.Resolve(context.Background(), resolver, 47.310004, -3.230001)
	require.NoError(t, err)
	name, err := cache.Resolve(context.Background(), resolver, 47.310008, -3.229996)
	require.NoError(t, err)

	assert.Equal(t, "Kérel, Bangor", name)
	assert.Equal(t, int64(1), resolver.calls.Load())
}

func TestCache_ConcurrentCallersDoNotRace(t *testing.T) {
	gate := make(chan struct{})
	resolver := &stubResolver{name: "Kérel, Bangor", gate: gate}
	cache := NewCache(nil)

	const callers = 10
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Resolve(context.Background(), resolver, 47.31, -3.23)
		}(i)
	}

	close(gate)
	wg.Wait()

	// A miss followed by resolve-and-store must not fan out into duplicates
	assert.Equal(t, int64(1), resolver.calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "Kérel, Bangor", results[i])
	}
}

func TestCache_ReadThroughStore(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Put(context.Background(), "47.3100,-3.2300", "Kérel, Bangor"))
	store.puts = 0

	resolver := &stubResolver{name: "network should not be hit"}
	cache := NewCache(store)

	name, err := cache.Resolve(context.Background(), resolver, 47.31, -3.23)
	require.NoError(t, err)

	assert.Equal(t, "Kérel, Bangor", name)
	assert.Equal(t, int64(0), resolver.calls.Load())
	assert.Equal(t, 0, store.puts)
}

func TestCache_WriteThroughStore(t *testing.T) {
	store := newFakeStore()
	resolver := &stubResolver{name: "Kérel, Bangor"}
	cache := NewCache(store)

	_, err := cache.Resolve(context.Background(), resolver, 47.31, -3.23)
	require.NoError(t, err)

	name, ok := store.entries["47.3100,-3.2300"]
	require.True(t, ok, "resolved name should be written through")
	assert.Equal(t, "Kérel, Bangor", name)
}

func TestCache_FailureMemoizedWithinRun(t *testing.T) {
	resolver := &stubResolver{err: ErrUnresolved}
	cache := NewCache(nil)

	_, err := cache.Resolve(context.Background(), resolver, 47.31, -3.23)
	assert.Error(t, err)

	// Second ask for the same cell answers from memory, without retrying
	name, err := cache.Resolve(context.Background(), resolver, 47.31, -3.23)
	assert.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, int64(1), resolver.calls.Load())
}

func TestCache_Lookup(t *testing.T) {
	resolver := &stubResolver{name: "Kérel, Bangor"}
	cache := NewCache(nil)

	_, ok := cache.Lookup(47.31, -3.23)
	assert.False(t, ok)

	_, err := cache.Resolve(context.Background(), resolver, 47.31, -3.23)
	require.NoError(t, err)

	name, ok := cache.Lookup(47.31, -3.23)
	assert.True(t, ok)
	assert.Equal(t, "Kérel, Bangor", name)
}
