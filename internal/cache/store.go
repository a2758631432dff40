package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Kind is the entity family a cache key belongs to. Invalidation by
// kind covers every key of that family, mirroring how the UI treats
// query-key prefixes.
type Kind string

const (
	KindLessons       Kind = "lessons"
	KindConversations Kind = "conversations"
	KindMessages      Kind = "messages"
	KindRequests      Kind = "requests"
)

// Key identifies one cached query: the entity kind plus the query
// parameters that distinguish it within the kind.
type Key struct {
	Kind  Kind
	Param string
}

func (k Key) String() string {
	if k.Param == "" {
		return string(k.Kind)
	}
	return string(k.Kind) + ":" + k.Param
}

func LessonsKey(param string) Key {
	return Key{Kind: KindLessons, Param: param}
}

func UpcomingLessonsKey() Key {
	return Key{Kind: KindLessons, Param: "upcoming"}
}

func ConversationsKey(param string) Key {
	return Key{Kind: KindConversations, Param: param}
}

// MessagesKey holds the history of a single conversation. Page
// variations share the entry: the last completed fetch wins.
func MessagesKey(conversationID int64) Key {
	return Key{Kind: KindMessages, Param: strconv.FormatInt(conversationID, 10)}
}

func RequestsKey(param string) Key {
	return Key{Kind: KindRequests, Param: param}
}

// FetchFunc loads the authoritative value for a key from the server
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	stale     bool
	fetchedAt time.Time
}

// Store is the session-scoped query cache. It keeps the last known
// server response per key; entries are marked stale on invalidation and
// refetched on the next read. Push payloads are never written here
// directly - the refetch is the only write path.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	gens    map[Key]uint64
	group   singleflight.Group
	logger  *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{
		entries: make(map[Key]*entry),
		gens:    make(map[Key]uint64),
		logger:  logger,
	}
}

// Get returns the cached value for key, refetching when the entry is
// missing or stale. Concurrent refetches for the same key collapse into
// a single in-flight request.
func (s *Store) Get(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	s.mu.RLock()
	if e, ok := s.entries[key]; ok && !e.stale {
		value := e.value
		s.mu.RUnlock()
		return value, nil
	}
	s.mu.RUnlock()

	value, err, _ := s.group.Do(key.String(), func() (any, error) {
		// Another caller may have completed the refetch while this one
		// was waiting to enter the flight
		s.mu.Lock()
		if e, ok := s.entries[key]; ok && !e.stale {
			value := e.value
			s.mu.Unlock()
			return value, nil
		}
		// Snapshot the invalidation generation; registering the key makes
		// the in-flight fetch visible to kind-wide invalidation
		startGen := s.gens[key]
		s.gens[key] = startGen
		s.mu.Unlock()

		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		// An invalidation that landed mid-flight must survive the write:
		// the fetched value predates the event, so the entry stays stale
		outdated := s.gens[key] != startGen
		s.entries[key] = &entry{value: fetched, stale: outdated, fetchedAt: time.Now()}
		s.mu.Unlock()

		if outdated {
			s.logger.Debug("cache entry invalidated mid-flight", zap.String("key", key.String()))
		} else {
			s.logger.Debug("cache entry refreshed", zap.String("key", key.String()))
		}
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Invalidate marks one entry stale. The generation bump also reaches a
// fetch currently in flight for the key; a missing, idle entry is left
// alone: the next read fetches anyway.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gens[key]++
	if e, ok := s.entries[key]; ok {
		e.stale = true
		s.logger.Debug("cache entry invalidated", zap.String("key", key.String()))
	}
}

// InvalidateKind marks every entry of the given kind stale, in-flight
// fetches included
func (s *Store) InvalidateKind(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.gens {
		if key.Kind == kind {
			s.gens[key]++
		}
	}

	count := 0
	for key, e := range s.entries {
		if key.Kind == kind && !e.stale {
			e.stale = true
			count++
		}
	}

	if count > 0 {
		s.logger.Debug("cache kind invalidated",
			zap.String("kind", string(kind)),
			zap.Int("entries", count))
	}
}

// Clear drops every entry. Used on session teardown. Fetches in flight
// across the clear land stale.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[Key]*entry)
	for key := range s.gens {
		s.gens[key]++
	}
}
