package fh

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathEmptyIsCwd(t *testing.T) {
	got, err := ResolvePath("", nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestBytesToHuman(t *testing.T) {
	tests := []struct {
		src  uint64
		want string
	}{
		{0, "0 B"},
		{9, "9 B"},
		{1024, "1.0 KiB"},
		{10 * 1024, "10 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BytesToHuman(tt.src), "src=%d", tt.src)
	}
}
