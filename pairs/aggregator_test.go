package pairs

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEnumeratesAllCombinations(t *testing.T) {
	agg := NewAggregator()
	added, selfies := agg.Record([]string{"a", "b", "c"})

	assert.Equal(t, 3, added, "3 distinct names give C(3,2)=3 pairs")
	assert.Equal(t, 0, selfies)
	assert.Equal(t, 1, agg.Count(NewPair("a", "b")))
	assert.Equal(t, 1, agg.Count(NewPair("a", "c")))
	assert.Equal(t, 1, agg.Count(NewPair("b", "c")), "non-adjacent pairs are counted too")
	assert.Equal(t, 3, agg.KeysCount())
}

func TestRecordOrderIrrelevant(t *testing.T) {
	left := NewAggregator()
	left.Record([]string{"b", "a"})
	right := NewAggregator()
	right.Record([]string{"a", "b"})

	key := NewPair("a", "b")
	assert.Equal(t, left.Count(key), right.Count(key))
	assert.Equal(t, 1, left.Count(key))
}

func TestRecordEmptyAndSingleton(t *testing.T) {
	agg := NewAggregator()
	for _, artists := range [][]string{nil, {}, {"solo"}} {
		added, selfies := agg.Record(artists)
		assert.Zero(t, added)
		assert.Zero(t, selfies)
	}
	assert.Zero(t, agg.KeysCount())
	assert.Zero(t, agg.TotalCount())
}

func TestRecordDuplicateNameProducesSelfPair(t *testing.T) {
	agg := NewAggregator()
	added, selfies := agg.Record([]string{"a", "a", "b"})

	// sorted [a a b] gives (a,a), (a,b), (a,b) - duplicates are not cleaned up
	assert.Equal(t, 3, added)
	assert.Equal(t, 1, selfies)
	assert.Equal(t, 1, agg.Count(NewPair("a", "a")))
	assert.Equal(t, 2, agg.Count(NewPair("a", "b")))
}

func TestCoOccurrenceAcrossRecords(t *testing.T) {
	agg := NewAggregator()
	records := [][]string{
		{"a", "b", "c"},
		{"c", "a"},
		{"b", "a"},
		{"d"},
	}
	for _, record := range records {
		agg.Record(record)
	}

	assert.Equal(t, 2, agg.Count(NewPair("a", "b")))
	assert.Equal(t, 2, agg.Count(NewPair("a", "c")))
	assert.Equal(t, 1, agg.Count(NewPair("b", "c")))
	assert.Equal(t, 0, agg.Count(NewPair("a", "d")))
}

func TestReportThresholdIsStrict(t *testing.T) {
	agg := NewAggregator()
	agg.Record([]string{"a", "b"})
	agg.Record([]string{"a", "b"})

	assert.Empty(t, agg.Report(2), "count == minTimes is excluded")
	require.Len(t, agg.Report(1), 1)
	assert.Equal(t, Entry{Key: NewPair("a", "b"), Count: 2}, agg.Report(1)[0])
}

// the end-to-end example: records [a,b,c] [a,b] [a,c] [b,c] give every pair count 2
func TestReportExample(t *testing.T) {
	agg := NewAggregator()
	for _, record := range [][]string{{"a", "b", "c"}, {"a", "b"}, {"a", "c"}, {"b", "c"}} {
		agg.Record(record)
	}

	assert.Empty(t, agg.Report(2))

	entries := agg.Report(1)
	require.Len(t, entries, 3)
	assert.Equal(t, []Entry{
		{Key: NewPair("a", "b"), Count: 2},
		{Key: NewPair("a", "c"), Count: 2},
		{Key: NewPair("b", "c"), Count: 2},
	}, entries)
}

func TestReportIsIdempotentAndSorted(t *testing.T) {
	agg := NewAggregator()
	agg.Record([]string{"zz", "m", "a"})
	agg.Record([]string{"zz", "m", "a"})

	first := agg.Report(0)
	second := agg.Report(0)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].Key.Less(first[i].Key), "report must be sorted by pair key")
	}
}

func TestConcurrentRecordMatchesSequential(t *testing.T) {
	records := make([][]string, 0, 100)
	for i := 0; i < 100; i++ {
		records = append(records, []string{"a", "b", fmt.Sprintf("c%d", i%10)})
	}

	sequential := NewAggregator()
	for _, record := range records {
		sequential.Record(record)
	}

	concurrent := NewAggregator()
	var wg sync.WaitGroup
	for _, record := range records {
		wg.Add(1)
		go func(record []string) {
			defer wg.Done()
			concurrent.Record(record)
		}(record)
	}
	wg.Wait()

	assert.Equal(t, sequential.Report(0), concurrent.Report(0))
}
