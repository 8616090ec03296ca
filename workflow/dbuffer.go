package workflow

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/joncrlsn/dque"
	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/fh"
	"github.com/nj-eka/ArtistPairsGo/logging"
	"github.com/nj-eka/ArtistPairsGo/regs"
)

const dequeueRetryDelay = 10 * time.Millisecond

// DBuffer is durable transit buffering of parsed records through on-disk
// queues: a crash-safe hand-off between parsing and counting. Only records
// in transit touch disk; pair counts never do.
type DBuffer interface {
	Run(ctx context.Context, inputCh <-chan *Record)
	ResCh() <-chan *Record
	ErrCh() <-chan errs.Error
	Done() <-chan struct{}
	Stats() interface{}
}

type dbuf struct {
	que       *dque.DQue
	wg        sync.WaitGroup
	inputDone chan struct{}
}

func (r *dbuf) Enqueue(item *Record) error {
	r.wg.Add(1)
	if err := r.que.Enqueue(item); err != nil {
		r.wg.Done()
		return err
	}
	return nil
}

func (r *dbuf) Dequeue() (*Record, error) {
	data, err := r.que.Dequeue()
	if err != nil {
		return nil, err
	}
	defer r.wg.Done()
	if record, ok := data.(*Record); ok {
		return record, nil
	}
	return nil, fmt.Errorf("dque internal error: unexpected item type %T", data)
}

type QueueStats struct {
	ItemsCounter regs.Counter
	EndTime      time.Time
}

type QueueStatsMap map[string]*QueueStats

func (m QueueStatsMap) SortByName() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

type DBufferStats struct {
	StartTime   time.Time
	InputStats  QueueStatsMap
	OutputStats QueueStatsMap
}

type recordDBuffer struct {
	resCh        chan *Record
	errCh        chan errs.Error
	done         chan struct{}
	workersCount int
	dBufs        map[string]*dbuf
	stats        DBufferStats
}

func NewDBuffer(ctx context.Context, workersCount int, dirPath string, itemsPerSegment int, resume bool, turbo bool, statsOn bool) (DBuffer, errs.Error) {
	ctx = cu.BuildContext(ctx, cu.SetContextOperation("3.0.dbuf_init"))
	if ok, err := fh.IsDirectory(dirPath); !ok {
		return nil, errs.E(ctx, errs.SeverityCritical, errs.KindDBuff, fmt.Errorf("dbuffer dir [%s] unusable: %w", dirPath, err))
	}
	dBufs := make(map[string]*dbuf, workersCount)
	stats := DBufferStats{
		InputStats:  make(QueueStatsMap, workersCount),
		OutputStats: make(QueueStatsMap, workersCount),
	}
	for workerNum := 0; workerNum < workersCount; workerNum++ {
		workerName := queueWorkerName(workerNum)
		open := dque.New
		if resume {
			open = dque.NewOrOpen
		}
		que, err := open(workerName, dirPath, itemsPerSegment, RecordBuilder)
		if err != nil {
			return nil, errs.E(ctx, errs.SeverityCritical, errs.KindDBuff, fmt.Errorf("init dbuffer [%s] failed: %w", workerName, err))
		}
		dBuf := dbuf{
			que:       que,
			inputDone: make(chan struct{}),
		}
		if turbo {
			_ = que.TurboOn()
		}
		logging.Msg(ctx).Debugf("dbuf dque [%s/%s] open with size: %d (turbo=%v resume=%v)", dirPath, workerName, que.Size(), turbo, resume)
		if que.Size() > 0 {
			dBuf.wg.Add(que.Size())
		}
		dBufs[workerName] = &dBuf
		stats.InputStats[workerName] = &QueueStats{ItemsCounter: regs.NewCounter(0, statsOn)}
		stats.OutputStats[workerName] = &QueueStats{ItemsCounter: regs.NewCounter(0, statsOn)}
	}
	return &recordDBuffer{
		resCh:        make(chan *Record, workersCount*8),
		errCh:        make(chan errs.Error, workersCount*8),
		done:         make(chan struct{}),
		workersCount: workersCount,
		dBufs:        dBufs,
		stats:        stats,
	}, nil
}

func (r *recordDBuffer) Run(ctx context.Context, inputCh <-chan *Record) {
	ctx = cu.BuildContext(ctx, cu.SetContextOperation("3.dbuf"))
	r.stats.StartTime = time.Now()
	var wg sync.WaitGroup
	wg.Add(2 * len(r.dBufs))

	go func() {
		wg.Wait()
		close(r.resCh)
		close(r.errCh)
		close(r.done)
		logging.Msg(ctx).Debug("durable buffering stopped")
	}()

	// -> buffer
	for workerName, dBuf := range r.dBufs {
		go func(ctx context.Context, workerName string, dBuf *dbuf, stats *QueueStats) {
			ctx = cu.BuildContext(ctx, cu.AddContextOperation(cu.Operation(fmt.Sprintf("enqueue %s", workerName))))
			logging.Msg(ctx).Debugf("start pumping into [%s]", workerName)
			defer func() {
				stats.EndTime = time.Now()
				close(dBuf.inputDone)
				wg.Done()
				logging.Msg(ctx).Debugf("stop pumping into [%s]: %d / %d", workerName, stats.ItemsCounter.GetCount(), stats.ItemsCounter.GetScore())
			}()
			// drains until the parser closes its channel, so nothing read is lost
			for record := range inputCh {
				if err := dBuf.Enqueue(record); err == nil {
					stats.ItemsCounter.Add(record.Size())
				} else {
					r.errCh <- errs.E(ctx, errs.SeverityCritical, errs.KindDBuff, fmt.Errorf("enqueue to dbuf [%s] failed on item [%v] with err: %w", workerName, record, err))
				}
			}
		}(ctx, workerName, dBuf, r.stats.InputStats[workerName])
	}

	// buffer ->
	for workerName, dBuf := range r.dBufs {
		go func(ctx context.Context, workerName string, dBuf *dbuf, stats *QueueStats) {
			ctx = cu.BuildContext(ctx, cu.AddContextOperation(cu.Operation(fmt.Sprintf("dequeue %s", workerName))))
			logging.Msg(ctx).Debugf("start pumping out from [%s]", workerName)
			defer OnExit(ctx, r.errCh, fmt.Sprintf("pumping out from [%s]", workerName), func() {
				stats.EndTime = time.Now()
				if dBuf.que.Turbo() {
					err := dBuf.que.TurboSync()
					logging.Msg(ctx).Debugf("dbuf que [%s] turbo sync - done: %v", workerName, err)
				}
				err := dBuf.que.Close()
				logging.Msg(ctx).Debugf("dbuf que [%s] - closed: %v", workerName, err)
				wg.Done()
				logging.Msg(ctx).Debugf("stop pumping out from [%s]: %d(%d)", workerName, stats.ItemsCounter.GetCount(), stats.ItemsCounter.GetScore())
			})
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				item, err := dBuf.Dequeue()
				if err == nil {
					r.resCh <- item
					stats.ItemsCounter.Add(item.Size())
					continue
				}
				switch err {
				case dque.ErrQueueClosed:
					return
				case dque.ErrEmpty:
					select {
					case <-dBuf.inputDone:
						// input is over, but an item may have landed between
						// the failed Dequeue and this check
						if dBuf.que.Size() == 0 {
							return
						}
					default:
						time.Sleep(dequeueRetryDelay)
					}
				default:
					r.errCh <- errs.E(ctx, errs.KindDBuff, fmt.Errorf("dequeue from dbuf [%s] failed: %w", workerName, err))
					return
				}
			}
		}(ctx, workerName, dBuf, r.stats.OutputStats[workerName])
	}
}

func (r *recordDBuffer) ResCh() <-chan *Record {
	return r.resCh
}

func (r *recordDBuffer) ErrCh() <-chan errs.Error {
	return r.errCh
}

func (r *recordDBuffer) Done() <-chan struct{} {
	return r.done
}

func (r *recordDBuffer) Stats() interface{} {
	return &r.stats
}

func queueWorkerName(workerNum int) string {
	return fmt.Sprint("records_", workerNum)
}
