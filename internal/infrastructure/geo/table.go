package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// RegionUnknown is the region reported for country codes the table does
// not know about. Unknown codes degrade scoring, they never fail it.
const RegionUnknown = "Unknown"

// Entry describes one country in the risk table
type Entry struct {
	Code      string   `json:"code"`
	Region    string   `json:"region"`
	Neighbors []string `json:"neighbors"`
	HighRisk  bool     `json:"high_risk"`
}

// tableSnapshot is an immutable view of the table contents. Lookups read
// the current snapshot; reloads swap in a fresh one atomically so
// in-flight batches keep a consistent view.
type tableSnapshot struct {
	entries   map[string]Entry
	neighbors map[string]map[string]struct{}
}

// Table is the country risk table consumed by the geo scorer and the
// high-risk-country rule. Safe for concurrent use; Replace hot-reloads
// the contents without blocking readers.
type Table struct {
	snap atomic.Pointer[tableSnapshot]
}

// NewTable builds a table from the given entries
func NewTable(entries []Entry) *Table {
	t := &Table{}
	t.Replace(entries)
	return t
}

// Default returns a table preloaded with the built-in country data and
// the FATF-style high-risk jurisdiction list.
func Default() *Table {
	return NewTable(defaultEntries)
}

// Replace atomically swaps the table contents
func (t *Table) Replace(entries []Entry) {
	snap := &tableSnapshot{
		entries:   make(map[string]Entry, len(entries)),
		neighbors: make(map[string]map[string]struct{}, len(entries)),
	}
	for _, e := range entries {
		code := strings.ToUpper(e.Code)
		e.Code = code
		snap.entries[code] = e

		set := make(map[string]struct{}, len(e.Neighbors))
		for _, n := range e.Neighbors {
			set[strings.ToUpper(n)] = struct{}{}
		}
		snap.neighbors[code] = set
	}
	t.snap.Store(snap)
}

// Lookup returns the entry for a country code, if known
func (t *Table) Lookup(code string) (Entry, bool) {
	e, ok := t.snap.Load().entries[strings.ToUpper(code)]
	return e, ok
}

// Region returns the region for a country code, or RegionUnknown
func (t *Table) Region(code string) string {
	if e, ok := t.Lookup(code); ok {
		return e.Region
	}
	return RegionUnknown
}

// IsHighRisk reports whether a country is on the high-risk list
func (t *Table) IsHighRisk(code string) bool {
	e, ok := t.Lookup(code)
	return ok && e.HighRisk
}

// AreNeighbors reports whether b is in a's neighbor set
func (t *Table) AreNeighbors(a, b string) bool {
	set, ok := t.snap.Load().neighbors[strings.ToUpper(a)]
	if !ok {
		return false
	}
	_, ok = set[strings.ToUpper(b)]
	return ok
}

// Size returns the number of known countries
func (t *Table) Size() int {
	return len(t.snap.Load().entries)
}

// LoadFile reads table entries from a JSON file keyed by country code:
//
//	{"US": {"region": "North America", "neighbors": ["CA","MX"]}, ...}
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read country table: %w", err)
	}

	var raw map[string]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse country table: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for code, e := range raw {
		e.Code = code
		entries = append(entries, e)
	}
	return entries, nil
}
