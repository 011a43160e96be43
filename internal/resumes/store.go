package resumes

import (
	"context"
	"errors"
	"sync"

	"jobx-backend/internal/shared/telemetry"
)

const (
	DefaultMaxSessions = 500
	DefaultMaxBytes    = 256 << 20
)

// ErrNotFound is returned when a session has no stored resume.
var ErrNotFound = errors.New("resume not found")

// Store keeps at most one Record per session. Put replaces any previous
// record; concurrent uploads in one session resolve as last write wins.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, sessionID string) (Record, error)
}

// MemoryStore is an in-memory Store bounded by session count and by total
// PDF bytes. When either bound is exceeded the least recently written
// sessions are evicted. The newest record is always kept. Records are lost
// on restart.
type MemoryStore struct {
	maxSessions int
	maxBytes    int64

	mu    sync.RWMutex
	data  map[string]storedRecord // sessionId -> record
	bytes int64
	seq   uint64
}

type storedRecord struct {
	rec Record
	seq uint64 // write order
}

// NewMemoryStore constructs a MemoryStore. Non-positive bounds use the
// defaults.
func NewMemoryStore(maxSessions int, maxBytes int64) *MemoryStore {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &MemoryStore{
		maxSessions: maxSessions,
		maxBytes:    maxBytes,
		data:        make(map[string]storedRecord),
	}
}

// Put stores/overwrites the record for its session.
func (s *MemoryStore) Put(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.data[rec.SessionID]; ok {
		s.bytes -= int64(len(prev.rec.Content))
	}
	s.seq++
	s.data[rec.SessionID] = storedRecord{rec: rec, seq: s.seq}
	s.bytes += int64(len(rec.Content))
	s.evict(rec.SessionID)
	return nil
}

// Get returns the record for a session.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.data[sessionID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return stored.rec, nil
}

// Len reports the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// evict drops the oldest sessions other than keep until both bounds hold.
// Callers hold s.mu.
func (s *MemoryStore) evict(keep string) {
	for len(s.data) > s.maxSessions || (s.bytes > s.maxBytes && len(s.data) > 1) {
		oldestID := ""
		var oldestSeq uint64
		for id, stored := range s.data {
			if id == keep {
				continue
			}
			if oldestID == "" || stored.seq < oldestSeq {
				oldestID, oldestSeq = id, stored.seq
			}
		}
		if oldestID == "" {
			return
		}
		s.bytes -= int64(len(s.data[oldestID].rec.Content))
		delete(s.data, oldestID)
		telemetry.Info("resume.evicted", map[string]any{"session_id": oldestID})
	}
}
