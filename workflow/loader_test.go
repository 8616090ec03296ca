package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nj-eka/ArtistPairsGo/errs"
)

func runLoader(t *testing.T, filePaths ...string) (lines []string, errors []errs.Error) {
	t.Helper()
	loader := NewLoader(context.Background(), 1, nil, true, false)
	loader.Run(context.Background(), filePaths)
	for line := range loader.ResCh() {
		lines = append(lines, line)
	}
	<-loader.Done()
	for err := range loader.ErrCh() {
		errors = append(errors, err)
	}
	return lines, errors
}

func TestLoaderDeliversLinesInSourceOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artists.txt")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\nd,e\n\nf\n"), 0644))

	lines, errors := runLoader(t, path)
	assert.Empty(t, errors)
	assert.Equal(t, []string{"a,b,c", "d,e", "f"}, lines, "empty lines are skipped, order is kept")
}

func TestLoaderHandlesMissingFinalNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artists.txt")
	require.NoError(t, os.WriteFile(path, []byte("a,b\nc,d"), 0644))

	lines, errors := runLoader(t, path)
	assert.Empty(t, errors)
	assert.Equal(t, []string{"a,b", "c,d"}, lines)
}

func TestLoaderReportsUnavailableInput(t *testing.T) {
	lines, errors := runLoader(t, filepath.Join(t.TempDir(), "no_such_file.txt"))

	assert.Empty(t, lines)
	require.Len(t, errors, 1)
	assert.Equal(t, errs.KindOpenFile, errors[0].Kind())
	assert.Equal(t, errs.SeverityCritical, errors[0].Severity())
}
