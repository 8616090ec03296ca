package pairs

import (
	"sort"
	"sync"
)

// Aggregator maintains occurrence counts of unordered artist pairs
// across customer records. Safe for concurrent Record calls: counting is
// a commutative sum, so any interleaving yields the sequential result.
type Aggregator struct {
	mu   sync.RWMutex
	hits map[Pair]int
}

func NewAggregator() *Aggregator {
	return &Aggregator{hits: make(map[Pair]int)}
}

// Record folds one customer's artist list into the pair counts and returns
// the number of pairs added along with how many of them were self-pairs
// (same artist listed twice in the record - kept as is, not deduplicated).
//
// The list is sorted first: that canonicalizes pair order and lets the
// i<j enumeration below visit each of the C(k,2) unordered pairs exactly once.
// Records with fewer than two artists contribute nothing.
func (r *Aggregator) Record(artists []string) (added, selfies int) {
	if len(artists) < 2 {
		return 0, 0
	}
	sorted := make([]string, len(artists))
	copy(sorted, artists)
	sort.Strings(sorted)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < len(sorted)-1; i++ {
		for j := i + 1; j < len(sorted); j++ {
			pair := Pair{First: sorted[i], Second: sorted[j]}
			r.hits[pair]++
			added++
			if pair.Selfie() {
				selfies++
			}
		}
	}
	return added, selfies
}

// Count returns the current count of the given pair.
func (r *Aggregator) Count(p Pair) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hits[p]
}

// KeysCount returns the number of distinct pairs seen so far.
func (r *Aggregator) KeysCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hits)
}

// TotalCount returns the sum of all pair counts.
func (r *Aggregator) TotalCount() (total int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.hits {
		total += n
	}
	return
}

// Entry is one reported pair with its occurrence count.
type Entry struct {
	Key   Pair
	Count int
}

// Report returns every pair counted strictly more than minTimes, sorted by key.
// It is a snapshot: repeated calls on an unchanged aggregator yield equal results.
func (r *Aggregator) Report(minTimes int) []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.hits))
	for pair, count := range r.hits {
		if count > minTimes {
			entries = append(entries, Entry{Key: pair, Count: count})
		}
	}
	r.mu.RUnlock()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.Less(entries[j].Key)
	})
	return entries
}
