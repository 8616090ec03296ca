package errs

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
)

func TestEDefaults(t *testing.T) {
	err := E("something broke")
	assert.Equal(t, SeverityError, err.Severity())
	assert.Equal(t, KindOther, err.Kind())
	assert.EqualError(t, err.Unwrap(), "something broke")
	assert.NotEmpty(t, err.StackTrace())
}

func TestEComposition(t *testing.T) {
	ctx := cu.BuildContext(context.Background(), cu.SetContextOperation("1.loader"))
	cause := fmt.Errorf("open failed")
	err := E(ctx, SeverityCritical, KindOpenFile, cause)

	assert.Equal(t, SeverityCritical, err.Severity())
	assert.Equal(t, KindOpenFile, err.Kind())
	assert.Equal(t, "1.loader", err.OperationPath().String())
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "open failed")
	assert.Contains(t, err.Error(), "file open")
}

func TestEPassesThroughError(t *testing.T) {
	original := E(SeverityWarning, KindInvalidValue, "dup")
	assert.Equal(t, original, E(original))
}
