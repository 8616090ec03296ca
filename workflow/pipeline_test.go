package workflow

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// end to end: file -> loader -> parser -> dbuffer -> counter -> reporter
func TestPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "artists.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("a,b,c\na,b\na,c\nb,c\n"), 0644))
	quesDir := filepath.Join(dir, "dques")
	require.NoError(t, os.MkdirAll(quesDir, 0755))

	ctx := context.Background()
	loader := NewLoader(ctx, 1, nil, true, false)
	parser := NewParser(ctx, 2, false)
	dbuf, derr := NewDBuffer(ctx, 2, quesDir, 16, false, false, false)
	require.Nil(t, derr)
	counter := NewPairCounter(ctx, 2, false)

	loader.Run(ctx, []string{inputPath})
	parser.Run(ctx, loader.ResCh())
	dbuf.Run(ctx, parser.ResCh())
	counter.Run(ctx, dbuf.ResCh())

	<-loader.Done()
	<-parser.Done()
	<-dbuf.Done()
	<-counter.Done()

	for err := range loader.ErrCh() {
		t.Fatalf("loader error: %v", err)
	}
	for err := range parser.ErrCh() {
		t.Fatalf("parser error: %v", err)
	}
	for err := range dbuf.ErrCh() {
		t.Fatalf("dbuffer error: %v", err)
	}
	for err := range counter.ErrCh() {
		t.Fatalf("counter error: %v", err)
	}

	var out bytes.Buffer
	reported, rerr := NewReporter(ctx, counter.Aggregator(), 2, &out).Report(ctx)
	require.Nil(t, rerr)
	assert.Zero(t, reported, "every pair has count 2, strict threshold excludes all")

	out.Reset()
	reported, rerr = NewReporter(ctx, counter.Aggregator(), 1, &out).Report(ctx)
	require.Nil(t, rerr)
	assert.Equal(t, 3, reported)
	assert.Equal(t,
		"(a, b) appears 2 times! \n(a, c) appears 2 times! \n(b, c) appears 2 times! \n",
		out.String())
}
