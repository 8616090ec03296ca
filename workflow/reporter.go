package workflow

import (
	"bufio"
	"context"
	"fmt"
	"io"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/logging"
	"github.com/nj-eka/ArtistPairsGo/pairs"
)

// Reporter writes every pair counted strictly more than minTimes to out,
// one line per pair. It runs only after counting has drained and never
// mutates the aggregator, so repeated reports over an unchanged
// aggregator are identical.
type Reporter interface {
	Report(ctx context.Context) (reported int, err errs.Error)
}

type reporter struct {
	agg      *pairs.Aggregator
	minTimes int
	out      io.Writer
}

func NewReporter(ctx context.Context, agg *pairs.Aggregator, minTimes int, out io.Writer) Reporter {
	_ = cu.BuildContext(ctx, cu.SetContextOperation("5.0.reporter_init"))
	return &reporter{
		agg:      agg,
		minTimes: minTimes,
		out:      out,
	}
}

func (r *reporter) Report(ctx context.Context) (int, errs.Error) {
	ctx = cu.BuildContext(ctx, cu.SetContextOperation("5.reporter"))
	entries := r.agg.Report(r.minTimes)
	writer := bufio.NewWriter(r.out)
	for _, entry := range entries {
		// trailing space after "times!" kept for output compatibility
		if _, err := fmt.Fprintf(writer, "%s appears %d times! \n", entry.Key, entry.Count); err != nil {
			return 0, errs.E(ctx, errs.KindReport, fmt.Errorf("writing report entry [%s] failed: %w", entry.Key, err))
		}
	}
	if err := writer.Flush(); err != nil {
		return 0, errs.E(ctx, errs.KindReport, fmt.Errorf("flushing report failed: %w", err))
	}
	logging.Msg(ctx).Infof("reported %d pair(s) out of %d with count > %d", len(entries), r.agg.KeysCount(), r.minTimes)
	return len(entries), nil
}
