package history

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/ddc/pkg/ddc/store"
)

// Recorder stamps queries with sortable IDs and saves them to a store
type Recorder struct {
	store store.Store
	now   func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a Recorder writing to st
func New(st store.Store) *Recorder {
	return &Recorder{
		store:   st,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Record saves one query and returns the stored record.
func (r *Recorder) Record(ctx context.Context, kind, input string, hits int) (store.QueryRecord, error) {
	at := r.now()

	r.mu.Lock()
	id, err := ulid.New(ulid.Timestamp(at), r.entropy)
	r.mu.Unlock()
	if err != nil {
		return store.QueryRecord{}, err
	}

	q := store.QueryRecord{
		ID:    id.String(),
		Kind:  kind,
		Input: input,
		Hits:  hits,
		At:    at,
	}
	if err := r.store.RecordQuery(ctx, q); err != nil {
		return store.QueryRecord{}, err
	}
	return q, nil
}

// Recent returns the k most recent queries.
func (r *Recorder) Recent(ctx context.Context, k int) ([]store.QueryRecord, error) {
	return r.store.RecentQueries(ctx, k)
}
