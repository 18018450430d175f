package velocity

import (
	"hash/fnv"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"aml-screening-engine/internal/domain/screening"
)

// shardCount spreads entities across independent locks so concurrent
// writers to different entities never contend.
const shardCount = 64

// Config bounds the per-entity rolling windows
type Config struct {
	// Horizon is the lookback period; entries older than it are evicted
	// lazily on each write.
	Horizon time.Duration

	// MaxEntries caps the window size per entity. Oldest entries are
	// dropped first. Zero means no cap.
	MaxEntries int
}

// DefaultConfig returns the standard 24h window
func DefaultConfig() Config {
	return Config{
		Horizon:    24 * time.Hour,
		MaxEntries: 1000,
	}
}

// Tracker maintains per-entity rolling windows of (timestamp, amount)
// pairs. Windows are owned exclusively by the tracker; callers only ever
// see copied snapshots. Writes to the same entity are serialized by a
// per-window mutex, writes to different entities proceed independently.
type Tracker struct {
	cfg    Config
	shards [shardCount]*shard
	logger *slog.Logger
	nowFn  func() time.Time
}

type shard struct {
	mu      sync.RWMutex
	windows map[string]*window
}

type window struct {
	mu      sync.Mutex
	entries []screening.WindowEntry
	sum     decimal.Decimal
}

// NewTracker creates a velocity tracker
func NewTracker(cfg Config, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{cfg: cfg, logger: logger, nowFn: time.Now}
	for i := range t.shards {
		t.shards[i] = &shard{windows: make(map[string]*window)}
	}
	return t
}

// SetClock overrides the time source, used by aging tests
func (t *Tracker) SetClock(fn func() time.Time) {
	t.nowFn = fn
}

// Record appends a transaction to the entity's window, evicts entries
// older than the horizon and returns the resulting snapshot.
func (t *Tracker) Record(entityID string, ts time.Time, amount decimal.Decimal) screening.WindowSnapshot {
	w := t.window(entityID, true)

	w.mu.Lock()
	defer w.mu.Unlock()

	if t.corrupt(w) {
		// Window state errors are fatal to this entity only: reset and
		// continue, never propagate to unrelated entities.
		t.logger.Warn("velocity window corrupt, resetting", "entity_id", entityID)
		w.entries = nil
		w.sum = decimal.Zero
	}

	w.entries = append(w.entries, screening.WindowEntry{Timestamp: ts, Amount: amount})
	w.sum = w.sum.Add(amount)

	// Same-entity writes normally arrive in timestamp order; restore it
	// when an out-of-order transaction slips through.
	if n := len(w.entries); n > 1 && w.entries[n-1].Timestamp.Before(w.entries[n-2].Timestamp) {
		sort.SliceStable(w.entries, func(i, j int) bool {
			return w.entries[i].Timestamp.Before(w.entries[j].Timestamp)
		})
	}

	t.pruneLocked(w)
	return t.snapshotLocked(entityID, w)
}

// Snapshot returns a read-only view of the entity's window without
// mutating tracker state. Entries past the horizon are excluded from the
// view even though eviction itself only happens on writes.
func (t *Tracker) Snapshot(entityID string) screening.WindowSnapshot {
	w := t.window(entityID, false)
	if w == nil {
		return screening.WindowSnapshot{EntityID: entityID, Sum: decimal.Zero}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return t.snapshotLocked(entityID, w)
}

// Reset discards the window for one entity
func (t *Tracker) Reset(entityID string) {
	s := t.shards[shardFor(entityID)]
	s.mu.Lock()
	delete(s.windows, entityID)
	s.mu.Unlock()
}

func (t *Tracker) window(entityID string, create bool) *window {
	s := t.shards[shardFor(entityID)]

	s.mu.RLock()
	w, ok := s.windows[entityID]
	s.mu.RUnlock()
	if ok || !create {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok = s.windows[entityID]; ok {
		return w
	}
	w = &window{sum: decimal.Zero}
	s.windows[entityID] = w
	return w
}

// pruneLocked evicts entries older than the horizon and enforces the
// entry cap. Caller holds w.mu.
func (t *Tracker) pruneLocked(w *window) {
	cutoff := t.nowFn().Add(-t.cfg.Horizon)

	drop := 0
	for drop < len(w.entries) && w.entries[drop].Timestamp.Before(cutoff) {
		w.sum = w.sum.Sub(w.entries[drop].Amount)
		drop++
	}
	if over := len(w.entries) - drop - t.cfg.MaxEntries; t.cfg.MaxEntries > 0 && over > 0 {
		for i := 0; i < over; i++ {
			w.sum = w.sum.Sub(w.entries[drop+i].Amount)
		}
		drop += over
	}
	if drop > 0 {
		w.entries = append(w.entries[:0], w.entries[drop:]...)
	}
}

// snapshotLocked builds a copied view of the in-horizon entries. Caller
// holds w.mu.
func (t *Tracker) snapshotLocked(entityID string, w *window) screening.WindowSnapshot {
	cutoff := t.nowFn().Add(-t.cfg.Horizon)

	snap := screening.WindowSnapshot{EntityID: entityID, Sum: decimal.Zero}
	for _, e := range w.entries {
		if e.Timestamp.Before(cutoff) {
			continue
		}
		if snap.Count == 0 {
			snap.First = e.Timestamp
		}
		snap.Count++
		snap.Sum = snap.Sum.Add(e.Amount)
		snap.Last = e.Timestamp
		snap.Entries = append(snap.Entries, e)
	}
	return snap
}

// corrupt reports whether the window's running state is inconsistent
func (t *Tracker) corrupt(w *window) bool {
	if w.sum.IsNegative() {
		return true
	}
	if t.cfg.MaxEntries > 0 && len(w.entries) > t.cfg.MaxEntries*2 {
		return true
	}
	return false
}

func shardFor(entityID string) int {
	h := fnv.New32a()
	h.Write([]byte(entityID))
	return int(h.Sum32() % shardCount)
}
