package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/pairs"
)

func foldRecords(t *testing.T, maxWorkers int, records ...*Record) (PairCounter, []errs.Error) {
	t.Helper()
	counter := NewPairCounter(context.Background(), maxWorkers, false)
	inputCh := make(chan *Record, len(records))
	for _, record := range records {
		inputCh <- record
	}
	close(inputCh)
	counter.Run(context.Background(), inputCh)
	<-counter.Done()

	collected := make([]errs.Error, 0)
	for err := range counter.ErrCh() {
		collected = append(collected, err)
	}
	return counter, collected
}

func TestPairCounterFoldsRecords(t *testing.T) {
	counter, errors := foldRecords(t, 1,
		&Record{Artists: []string{"a", "b", "c"}},
		&Record{Artists: []string{"a", "b"}},
		&Record{Artists: []string{"solo"}},
	)
	assert.Empty(t, errors)

	agg := counter.Aggregator()
	assert.Equal(t, 2, agg.Count(pairs.NewPair("a", "b")))
	assert.Equal(t, 1, agg.Count(pairs.NewPair("a", "c")))
	assert.Equal(t, 1, agg.Count(pairs.NewPair("b", "c")))
	assert.Equal(t, 3, agg.KeysCount())
}

func TestPairCounterWorkersMergeBySum(t *testing.T) {
	records := make([]*Record, 0, 50)
	for i := 0; i < 50; i++ {
		records = append(records, &Record{Artists: []string{"x", "y"}})
	}
	counter, errors := foldRecords(t, 4, records...)
	assert.Empty(t, errors)
	assert.Equal(t, 50, counter.Aggregator().Count(pairs.NewPair("x", "y")))
}

func TestPairCounterWarnsOnDuplicateArtist(t *testing.T) {
	counter, errors := foldRecords(t, 1, &Record{Artists: []string{"a", "a", "b"}})

	require.Len(t, errors, 1)
	assert.Equal(t, errs.SeverityWarning, errors[0].Severity())
	assert.Equal(t, errs.KindInvalidValue, errors[0].Kind())
	// the self-pair stays counted, per observed behavior of the data set
	assert.Equal(t, 1, counter.Aggregator().Count(pairs.NewPair("a", "a")))
}
