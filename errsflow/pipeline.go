package errflow

import (
	"context"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/logging"
	"github.com/nj-eka/ArtistPairsGo/regs"
)

type ErrorsMonitor struct {
	Done  <-chan struct{}
	stats regs.Decounter
}

func (r *ErrorsMonitor) Stats() interface{} {
	return r.stats
}

// LaunchErrorHandlers merges stage error channels, sorts errors per severity
// and dispatches them to handlers; critical errors of the given kinds cancel
// the run via [cancel].
func LaunchErrorHandlers(ctx context.Context, cancel context.CancelFunc, statsOn bool, errsChs ...<-chan errs.Error) *ErrorsMonitor {
	ctx = cu.BuildContext(ctx, cu.SetContextOperation("_.errs_moderation"))
	errsCh := MergeErrors(ctx, errsChs...)
	mscerrs, errsStats := SortFilteredErrors(ctx, errsCh, logging.GetSeveritiesFilter4CurrentLogLevel(), statsOn)
	errsDone := MapErrorHandlers(
		ctx,
		mscerrs,
		map[errs.Severity]FuncErrorHandler{
			errs.SeverityCritical: CriticalErrorHandlerBuilder(cancel, []errs.Kind{errs.KindOpenFile, errs.KindDBuff, errs.KindInternal}),
		},
		LoggingErrorHandler,
	)
	return &ErrorsMonitor{
		Done:  errsDone,
		stats: errsStats,
	}
}
