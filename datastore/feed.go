package datastore

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/coreybb/newsflash/apperrors"
	"github.com/coreybb/newsflash/models"
	"github.com/lib/pq"
)

const (
	feedMinReconnect = 10 * time.Second
	feedMaxReconnect = time.Minute
	feedPingInterval = 90 * time.Second
)

// Lister is the read side the feed snapshots from.
type Lister interface {
	List(ctx context.Context) ([]models.Source, error)
}

// Subscriber hands out live snapshot streams of the source feed.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan []models.Source, error)
}

// Feed turns Postgres LISTEN/NOTIFY into a fan-out of full, newest-first
// snapshots. Every subscriber receives the current set on subscription, then
// a fresh snapshot after each committed append — from this process or any
// other writer on the same database. If the database becomes unreachable,
// subscribers simply keep their last snapshot (stale-but-visible) until the
// listener reconnects.
type Feed struct {
	repo     Lister
	listener *pq.Listener

	mu   sync.Mutex
	subs map[chan []models.Source]struct{}
}

func NewFeed(connStr string, repo Lister) *Feed {
	listener := pq.NewListener(connStr, feedMinReconnect, feedMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("WARN (Feed): listener event %d: %v", ev, err)
		}
	})
	return &Feed{
		repo:     repo,
		listener: listener,
		subs:     make(map[chan []models.Source]struct{}),
	}
}

// Run drives the feed until ctx is cancelled. It must be running for
// subscribers to receive live updates; Subscribe itself works without it but
// then only delivers the initial snapshot.
func (f *Feed) Run(ctx context.Context) error {
	if err := f.listener.Listen(sourcesChannel); err != nil {
		return apperrors.NewStoreError(apperrors.StoreUnavailable, err)
	}
	defer f.listener.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-f.listener.Notify:
			// n is nil after a reconnect; notifications may have been missed
			// while disconnected, so refresh in that case too.
			if n != nil {
				log.Printf("INFO (Feed): source %s appended, refreshing %d subscriber(s)", n.Extra, f.subscriberCount())
			}
			f.broadcast(ctx)
		case <-time.After(feedPingInterval):
			if err := f.listener.Ping(); err != nil {
				log.Printf("WARN (Feed): listener ping failed: %v", err)
			}
		}
	}
}

// Subscribe registers a live snapshot stream. The current full set is
// delivered before any delta; the stream closes when ctx is cancelled.
// An unreachable store yields StoreError{Unavailable} and no stream.
func (f *Feed) Subscribe(ctx context.Context) (<-chan []models.Source, error) {
	snapshot, err := f.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ch := make(chan []models.Source, 1)
	ch <- snapshot

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, ch)
		close(ch)
		f.mu.Unlock()
	}()

	return ch, nil
}

func (f *Feed) subscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// broadcast pushes a fresh snapshot to every subscriber, replacing any
// undelivered older snapshot so slow consumers never block the feed.
func (f *Feed) broadcast(ctx context.Context) {
	snapshot, err := f.repo.List(ctx)
	if err != nil {
		log.Printf("WARN (Feed): snapshot refresh failed, subscribers keep previous state: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}
