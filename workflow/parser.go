package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/regs"
)

type ParserStats struct {
	StartTime, EndTime time.Time
	ItemsCounter       regs.Counter
	InputBytesCounter  regs.Counter
	OutputBytesCounter regs.Counter
}

// Parser splits raw input lines on Delimiter into customer records.
// Parsing is deliberately permissive: fields are not trimmed or validated,
// a line without delimiter becomes a single-artist record, duplicates stay.
type Parser interface {
	Run(ctx context.Context, inputCh <-chan string)
	ResCh() <-chan *Record
	ErrCh() <-chan errs.Error
	Done() <-chan struct{}
	Stats() interface{}
}

type parser struct {
	maxWorkers int
	resCh      chan *Record
	errCh      chan errs.Error
	done       chan struct{}
	wg         sync.WaitGroup
	wp         chan struct{}
	stats      ParserStats
}

func NewParser(ctx context.Context, maxWorkers int, statsOn bool) Parser {
	_ = cu.BuildContext(ctx, cu.SetContextOperation("2.0.parser_init"))
	return &parser{
		maxWorkers: maxWorkers,
		resCh:      make(chan *Record, maxWorkers),
		errCh:      make(chan errs.Error, maxWorkers*8),
		done:       make(chan struct{}),
		wp:         make(chan struct{}, maxWorkers),
		stats: ParserStats{
			ItemsCounter:       regs.NewCounter(0, statsOn),
			InputBytesCounter:  regs.NewCounter(0, statsOn),
			OutputBytesCounter: regs.NewCounter(0, statsOn),
		},
	}
}

func (r *parser) Run(ctx context.Context, inputCh <-chan string) {
	ctx = cu.BuildContext(ctx, cu.SetContextOperation("2.parser"))
	r.stats.StartTime = time.Now()

	go func(ctx context.Context) {
		ctx = cu.BuildContext(ctx, cu.AddContextOperation("wp"))
		defer OnExit(ctx, r.errCh, "parsing workers",
			func() {
				r.wg.Wait()
				r.stats.EndTime = time.Now()
				close(r.wp)
				close(r.resCh)
				close(r.errCh)
				close(r.done)
			})
		// ctx.Done() is ignored here for not to lose lines already read:
		// exit after input channel is closed and all received lines are parsed
		for line := range inputCh {
			r.wp <- struct{}{}
			r.wg.Add(1)
			go r.processLine(ctx, line)
		}
	}(ctx)
}

func (r *parser) processLine(ctx context.Context, line string) {
	ctx = cu.BuildContext(ctx, cu.AddContextOperation("processLine"))
	defer OnExit(ctx, r.errCh, "",
		func() {
			<-r.wp
			r.wg.Done()
		})
	record := &Record{Artists: strings.Split(line, Delimiter)}
	r.resCh <- record

	r.stats.ItemsCounter.Add(1)
	r.stats.InputBytesCounter.Add(len(line))
	r.stats.OutputBytesCounter.Add(record.Size())
}

func (r *parser) ResCh() <-chan *Record {
	return r.resCh
}

func (r *parser) ErrCh() <-chan errs.Error {
	return r.errCh
}

func (r *parser) Done() <-chan struct{} {
	return r.done
}

func (r *parser) Stats() interface{} {
	return &r.stats
}
