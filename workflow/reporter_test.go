package workflow

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nj-eka/ArtistPairsGo/pairs"
)

func TestReporterFormatsQualifyingPairs(t *testing.T) {
	agg := pairs.NewAggregator()
	for i := 0; i < 3; i++ {
		agg.Record([]string{"Muse", "Blur"})
	}
	agg.Record([]string{"Muse", "Doors"})

	var out bytes.Buffer
	reporter := NewReporter(context.Background(), agg, 2, &out)
	reported, err := reporter.Report(context.Background())

	require.Nil(t, err)
	assert.Equal(t, 1, reported)
	assert.Equal(t, "(Blur, Muse) appears 3 times! \n", out.String())
}

func TestReporterThresholdIsStrict(t *testing.T) {
	agg := pairs.NewAggregator()
	agg.Record([]string{"a", "b"})
	agg.Record([]string{"a", "b"})

	var out bytes.Buffer
	reported, err := NewReporter(context.Background(), agg, 2, &out).Report(context.Background())
	require.Nil(t, err)
	assert.Zero(t, reported, "count == minTimes must not be reported")
	assert.Empty(t, out.String())

	out.Reset()
	reported, err = NewReporter(context.Background(), agg, 1, &out).Report(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 1, reported)
	assert.Equal(t, "(a, b) appears 2 times! \n", out.String())
}

func TestReporterIsRestartable(t *testing.T) {
	agg := pairs.NewAggregator()
	agg.Record([]string{"c", "a", "b"})
	agg.Record([]string{"b", "a"})

	var first, second bytes.Buffer
	_, err := NewReporter(context.Background(), agg, 0, &first).Report(context.Background())
	require.Nil(t, err)
	_, err = NewReporter(context.Background(), agg, 0, &second).Report(context.Background())
	require.Nil(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t,
		"(a, b) appears 2 times! \n(a, c) appears 1 times! \n(b, c) appears 1 times! \n",
		first.String())
}
