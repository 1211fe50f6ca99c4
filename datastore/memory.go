package datastore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coreybb/newsflash/models"
	"github.com/google/uuid"
)

// MemoryStore implements Store and Subscriber in memory with the same
// contract as the Postgres pair: append-only, newest-first snapshots,
// snapshot-before-delta subscriptions. It backs tests and local development
// without a database.
type MemoryStore struct {
	mu      sync.Mutex
	sources []models.Source
	subs    map[chan []models.Source]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[chan []models.Source]struct{})}
}

func (s *MemoryStore) Append(ctx context.Context, source *models.Source) (string, error) {
	if err := validateSource(source); err != nil {
		return "", err
	}

	source.ID = uuid.NewString()
	source.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.sources = append(s.sources, *source)
	snapshot := s.snapshotLocked()
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
	s.mu.Unlock()

	return source.ID, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *MemoryStore) Subscribe(ctx context.Context) (<-chan []models.Source, error) {
	ch := make(chan []models.Source, 1)

	s.mu.Lock()
	ch <- s.snapshotLocked()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

// snapshotLocked copies the set ordered newest first, id as tie-break,
// matching the repository's ORDER BY.
func (s *MemoryStore) snapshotLocked() []models.Source {
	snapshot := make([]models.Source, len(s.sources))
	copy(snapshot, s.sources)
	sort.SliceStable(snapshot, func(i, j int) bool {
		if !snapshot[i].CreatedAt.Equal(snapshot[j].CreatedAt) {
			return snapshot[i].CreatedAt.After(snapshot[j].CreatedAt)
		}
		return snapshot[i].ID > snapshot[j].ID
	})
	return snapshot
}
