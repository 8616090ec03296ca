package workflow

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
	"time"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/fh"
	"github.com/nj-eka/ArtistPairsGo/logging"
	"github.com/nj-eka/ArtistPairsGo/regs"
)

const maxLineBufferSize = 64 * 1024 * 1024

type LoaderStats struct {
	StartTime, FinishTime      time.Time
	FilesCounter, ItemsCounter regs.Counter
}

// Loader reads input files line by line and feeds raw lines to ResCh
// in source order. A file that cannot be opened is the one fatal condition:
// it is reported at critical severity and no report is produced for the run.
type Loader interface {
	Run(ctx context.Context, filePaths []string)
	ResCh() <-chan string
	ErrCh() <-chan errs.Error
	Done() <-chan struct{}
	Stats() interface{}
}

type loader struct {
	resCh chan string
	errCh chan errs.Error
	done  chan struct{}
	stats LoaderStats

	maxWorkers int
	usr        *user.User
	dry        bool
}

func NewLoader(ctx context.Context, maxWorkers int, usr *user.User, dry bool, statsOn bool) Loader {
	_ = cu.BuildContext(ctx, cu.SetContextOperation("1.0.loader_init"))
	return &loader{
		resCh:      make(chan string, maxWorkers*8),
		errCh:      make(chan errs.Error, maxWorkers*8),
		done:       make(chan struct{}),
		maxWorkers: maxWorkers,
		usr:        usr,
		dry:        dry,
		stats: LoaderStats{
			FilesCounter: regs.NewCounter(0, statsOn),
			ItemsCounter: regs.NewCounter(0, statsOn),
		},
	}
}

func (r *loader) Run(ctx context.Context, filePaths []string) {
	ctx = cu.BuildContext(ctx, cu.SetContextOperation("1.loader"))
	r.stats.StartTime = time.Now()
	source := make(chan string)

	go func(ctx context.Context) {
		ctx = cu.BuildContext(ctx, cu.AddContextOperation("iter_sources"))
		defer OnExit(ctx, r.errCh, "iter_sources",
			func() {
				close(source)
			})
		for _, filePath := range filePaths {
			if fullFilePath, err := fh.ResolvePath(filePath, r.usr); err != nil {
				r.errCh <- errs.E(ctx, errs.KindInvalidValue, fmt.Errorf("resolving file [%s] failed: %w", filePath, err))
			} else {
				select {
				case <-ctx.Done():
					return
				case source <- fullFilePath:
				}
			}
		}
	}(ctx)

	go func(ctx context.Context) {
		ctx = cu.BuildContext(ctx, cu.AddContextOperation("workers"))
		wg := sync.WaitGroup{}
		wp := make(chan struct{}, r.maxWorkers)

		defer OnExit(ctx, r.errCh, "workers",
			func() {
				// wait for graceful closing of all open files
				wg.Wait()
				r.stats.FinishTime = time.Now()
				close(wp)
				close(r.resCh)
				close(r.errCh)
				close(r.done)
			})
		for {
			select {
			case <-ctx.Done():
				return
			case filePath, more := <-source:
				if !more {
					return
				}
				select {
				case <-ctx.Done():
					return
				case wp <- struct{}{}:
					wg.Add(1)
					go r.processFile(ctx, &wg, wp, filePath)
				}
			}
		}
	}(ctx)
}

func (r *loader) processFile(ctx context.Context, wg *sync.WaitGroup, wp <-chan struct{}, filePath string) {
	ctx = cu.BuildContext(ctx, cu.AddContextOperation("processFile"))
	defer OnExit(ctx, r.errCh, fmt.Sprintf("reading file [%s]", filePath), func() {
		r.stats.FilesCounter.Add(1)
		<-wp
		wg.Done()
	})
	file, err := os.Open(filePath)
	if err != nil {
		r.errCh <- errs.E(ctx, errs.SeverityCritical, errs.KindOpenFile, fmt.Errorf("< open [%s] failed: %w", filePath, err))
		return
	}
	logging.Msg(ctx).Debug("> open ", filePath)
	defer func() {
		err := file.Close()
		logging.Msg(ctx).Debug("< close ", filePath, " with err: ", err)
		if !r.dry {
			path, name := filepath.Split(filePath)
			if err := os.Rename(filePath, filepath.Join(path, "."+name)); err != nil {
				r.errCh <- errs.E(ctx, errs.KindIO, fmt.Errorf("renaming file [%s] failed: %w", filePath, err))
			}
		}
	}()

	fileInfo, err := file.Stat()
	if err != nil {
		r.errCh <- errs.E(ctx, errs.SeverityCritical, errs.KindOpenFile, fmt.Errorf("< stat [%s] failed: %w", filePath, err))
		return
	}

	var reader io.Reader = file
	if strings.EqualFold(filepath.Ext(filePath), ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			r.errCh <- errs.E(ctx, errs.SeverityCritical, errs.KindOpenFile, fmt.Errorf("< gzip open [%s] failed: %w", filePath, err))
			return
		}
		defer func() {
			err := gz.Close()
			logging.Msg(ctx).Debug("< gzip read ", filePath, " closed with err: ", err)
		}()
		reader = gz
	}

	bufSize := maxLineBufferSize
	if fileInfo.Size() > 0 && fileInfo.Size() < int64(bufSize) {
		bufSize = int(fileInfo.Size())
	}
	lineReader := bufio.NewReaderSize(reader, bufSize)
	for {
		line, err := lineReader.ReadString('\n')
		if err != nil && err != io.EOF {
			lines, bytes := r.stats.ItemsCounter.GetCountScore()
			r.errCh <- errs.E(ctx, errs.SeverityCritical, errs.KindIO, fmt.Errorf(
				"< read [%s] failed with %d/%d read and err: %w", filePath, lines, bytes, err))
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) > 0 { // an empty record contributes no pairs anyway
			select {
			case <-ctx.Done():
				logging.Msg(ctx).Infof("processing file [%s] is stopped at the line: <%s>", filePath, line)
				return
			case r.resCh <- line:
				r.stats.ItemsCounter.Add(len(line))
			}
		}
		if err == io.EOF {
			logging.Msg(ctx).Infof("read input file [%s] - ok: (%d/%d)", filePath, r.stats.ItemsCounter.GetCount(), r.stats.ItemsCounter.GetScore())
			return
		}
	}
}

func (r *loader) ResCh() <-chan string {
	return r.resCh
}

func (r *loader) ErrCh() <-chan errs.Error {
	return r.errCh
}

func (r *loader) Done() <-chan struct{} {
	return r.done
}

func (r *loader) Stats() interface{} {
	return &r.stats
}
