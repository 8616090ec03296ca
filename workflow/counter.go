package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/logging"
	"github.com/nj-eka/ArtistPairsGo/pairs"
	"github.com/nj-eka/ArtistPairsGo/regs"
)

type CounterStats struct {
	StartTime, FinishTime time.Time
	RecordsCounter        regs.Counter // count: records folded, score: record bytes
	PairsCounter          regs.Counter // count: records that produced pairs, score: pair increments
}

// PairCounter is the terminal pumping stage: it folds buffered records into
// the pair aggregator. Folding is a commutative sum, so concurrent workers
// produce exactly the sequential result.
type PairCounter interface {
	Run(ctx context.Context, inputCh <-chan *Record)
	Aggregator() *pairs.Aggregator
	ErrCh() <-chan errs.Error
	Done() <-chan struct{}
	Stats() interface{}
}

type pairCounter struct {
	agg        *pairs.Aggregator
	errCh      chan errs.Error
	done       chan struct{}
	maxWorkers int
	stats      CounterStats
}

func NewPairCounter(ctx context.Context, maxWorkers int, statsOn bool) PairCounter {
	_ = cu.BuildContext(ctx, cu.SetContextOperation("4.0.counter_init"))
	return &pairCounter{
		agg:        pairs.NewAggregator(),
		errCh:      make(chan errs.Error, maxWorkers*8),
		done:       make(chan struct{}),
		maxWorkers: maxWorkers,
		stats: CounterStats{
			RecordsCounter: regs.NewCounter(0, statsOn),
			PairsCounter:   regs.NewCounter(0, statsOn),
		},
	}
}

func (r *pairCounter) Run(ctx context.Context, inputCh <-chan *Record) {
	ctx = cu.BuildContext(ctx, cu.SetContextOperation("4.counter"))
	r.stats.StartTime = time.Now()

	go func(ctx context.Context) {
		ctx = cu.BuildContext(ctx, cu.AddContextOperation("workers"))
		wg := sync.WaitGroup{}
		wg.Add(r.maxWorkers)
		defer OnExit(ctx, r.errCh, "counting workers",
			func() {
				wg.Wait()
				r.stats.FinishTime = time.Now()
				close(r.errCh)
				close(r.done)
			})
		for workerNum := 0; workerNum < r.maxWorkers; workerNum++ {
			go func(ctx context.Context, workerNum int) {
				ctx = cu.BuildContext(ctx, cu.AddContextOperation(cu.Operation(fmt.Sprintf("fold_%d", workerNum))))
				logging.Msg(ctx).Debugf("counting worker %d - started", workerNum)
				defer wg.Done()
				// drains until the buffer closes its channel: every record
				// already read from input must reach the counts
				for record := range inputCh {
					added, selfies := r.agg.Record(record.Artists)
					r.stats.RecordsCounter.Add(record.Size())
					if added > 0 {
						r.stats.PairsCounter.Add(added)
					}
					if selfies > 0 {
						r.errCh <- errs.E(ctx, errs.SeverityWarning, errs.KindInvalidValue,
							fmt.Errorf("record %v lists the same artist more than once: %d self-pair(s) counted", record.Artists, selfies))
					}
				}
				logging.Msg(ctx).Debugf("counting worker %d - input channel closed", workerNum)
			}(ctx, workerNum)
		}
	}(ctx)
}

func (r *pairCounter) Aggregator() *pairs.Aggregator {
	return r.agg
}

func (r *pairCounter) ErrCh() <-chan errs.Error {
	return r.errCh
}

func (r *pairCounter) Done() <-chan struct{} {
	return r.done
}

func (r *pairCounter) Stats() interface{} {
	return &r.stats
}
