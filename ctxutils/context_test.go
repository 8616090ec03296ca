package ctxutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContextOperations(t *testing.T) {
	ctx := BuildContext(context.Background(), SetContextOperation("0.main"))
	ctx = BuildContext(ctx, AddContextOperation("workers"))
	ctx = BuildContext(ctx, AddContextOperation("fold_1"))

	assert.Equal(t, "0.main/workers/fold_1", GetContextOperations(ctx).String())
}

func TestSetResetsPath(t *testing.T) {
	ctx := BuildContext(context.Background(), SetContextOperation("1.loader"), AddContextOperation("iter"))
	ctx = BuildContext(ctx, SetContextOperation("2.parser"))

	assert.Equal(t, "2.parser", GetContextOperations(ctx).String())
}

func TestNilContext(t *testing.T) {
	assert.Empty(t, GetContextOperations(nil).Path)
	ctx := BuildContext(nil, SetContextOperation("x"))
	assert.Equal(t, "x", GetContextOperations(ctx).String())
}
