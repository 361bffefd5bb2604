// Package results keeps the append-only log of game attempts.
package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/mindgym/internal/games"
	"github.com/verte-zerg/mindgym/internal/model"
)

// LogKey is the storage key of the serialized attempt log.
const LogKey = "attempt_log"

// KV is the durable storage the log is mirrored to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// ErrInvalidScore is returned for NaN or infinite scores, which cannot be ranked or encoded.
var ErrInvalidScore = errors.New("score must be a finite number")

// Store records attempts and answers best-score queries.
type Store struct {
	kv    KV
	now   func() time.Time
	order []string
	byID  map[string]model.AttemptRecord
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New loads the persisted log from kv. Unreadable data yields an empty log.
func New(ctx context.Context, kv KV, opts ...Option) *Store {
	s := &Store{
		kv:   kv,
		now:  time.Now,
		byID: map[string]model.AttemptRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, ok, err := s.kv.Get(ctx, LogKey)
	if err != nil {
		logErrf("failed to read attempt log: %v\n", err)
		return
	}
	if !ok {
		return
	}
	var records []model.AttemptRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logErrf("discarding unreadable attempt log: %v\n", err)
		return
	}
	order := make([]string, 0, len(records))
	byID := make(map[string]model.AttemptRecord, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		if _, dup := byID[rec.ID]; !dup {
			order = append(order, rec.ID)
		}
		byID[rec.ID] = rec
	}
	s.order = order
	s.byID = byID
}

// Record appends a new attempt and persists the log.
// A failed write is logged; the attempt stays in memory and is written with the next record.
// Non-finite scores are rejected and leave the log untouched.
func (s *Store) Record(ctx context.Context, variant model.Variant, score float64, scope string) (model.AttemptRecord, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return model.AttemptRecord{}, ErrInvalidScore
	}
	rec := model.AttemptRecord{
		ID:        uuid.NewString(),
		Variant:   variant,
		Score:     score,
		Timestamp: s.now().UTC(),
		Context:   scope,
	}
	s.order = append(s.order, rec.ID)
	s.byID[rec.ID] = rec
	if err := s.persist(ctx); err != nil {
		logErrf("failed to save attempt log: %v\n", err)
	}
	return rec, nil
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.records())
	if err != nil {
		return fmt.Errorf("encode attempt log: %w", err)
	}
	return s.kv.Set(ctx, LogKey, data)
}

// Best returns the extremal score for variant. An empty scope matches every record of the variant,
// otherwise only records whose Context equals scope.
func (s *Store) Best(variant model.Variant, scope string) (float64, bool) {
	var best float64
	found := false
	for _, id := range s.order {
		rec := s.byID[id]
		if !matches(rec, variant, scope) {
			continue
		}
		if !found || games.Better(variant, rec.Score, best) {
			best = rec.Score
			found = true
		}
	}
	return best, found
}

// Attempts returns matching records in insertion order.
func (s *Store) Attempts(variant model.Variant, scope string) []model.AttemptRecord {
	var out []model.AttemptRecord
	for _, id := range s.order {
		rec := s.byID[id]
		if matches(rec, variant, scope) {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of recorded attempts.
func (s *Store) Len() int {
	return len(s.order)
}

func (s *Store) records() []model.AttemptRecord {
	out := make([]model.AttemptRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func matches(rec model.AttemptRecord, variant model.Variant, scope string) bool {
	if rec.Variant != variant {
		return false
	}
	return scope == "" || rec.Context == scope
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
