package errflow

import (
	"context"

	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/logging"
	"github.com/nj-eka/ArtistPairsGo/regs"
)

// ErrStatKey groups errors for run statistics.
type ErrStatKey struct {
	Severity   errs.Severity
	Kind       errs.Kind
	Operations string
}

// Less implements regs.Lesser: higher severities first, then by operation path.
func (k ErrStatKey) Less(other interface{}) bool {
	o, ok := other.(ErrStatKey)
	if !ok {
		return false
	}
	if k.Severity != o.Severity {
		return k.Severity > o.Severity
	}
	if k.Operations != o.Operations {
		return k.Operations < o.Operations
	}
	return k.Kind < o.Kind
}

// SortFilteredErrors fans the merged error stream out into per-severity
// channels (for severities in filterSeverities) and counts every error
// into the returned registry.
func SortFilteredErrors(ctx context.Context, cerr <-chan errs.Error, filterSeverities []errs.Severity, statsOn bool) (map[errs.Severity]chan errs.Error, regs.Decounter) {
	scerr := make(map[errs.Severity]chan errs.Error)
	stats := regs.NewDecounter(len(errs.AllSeverities)*int(errs.KindInternal)*64, statsOn)
	for _, severity := range filterSeverities {
		scerr[severity] = make(chan errs.Error, cap(cerr))
	}
	go func() {
		defer func() {
			for severity, cerr := range scerr {
				close(cerr)
				logging.Msg(ctx).Debug("ERRCh - ", severity.String(), " - closed")
			}
		}()
		for err := range cerr {
			if err != nil {
				stats.CheckIn(ErrStatKey{err.Severity(), err.Kind(), err.OperationPath().String()})
				if cerr, ok := scerr[err.Severity()]; ok {
					cerr <- err
				}
			}
		}
	}()
	return scerr, stats
}
