package errflow

import (
	"context"
	"sync"

	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/logging"
)

type FuncErrorHandler func(cerr <-chan errs.Error, wg *sync.WaitGroup)

func MapErrorHandlers(
	ctx context.Context,
	scerr map[errs.Severity]chan errs.Error,
	handlers map[errs.Severity]FuncErrorHandler,
	defaultHandler FuncErrorHandler,
) <-chan struct{} {
	logging.Msg(ctx).Debug("errors handlers - start")
	done := make(chan struct{})
	var wg sync.WaitGroup
	for severity, cerr := range scerr {
		handler := defaultHandler
		if handlers != nil {
			if h, ok := handlers[severity]; ok {
				handler = h
			}
		}
		wg.Add(1)
		go handler(cerr, &wg)
	}
	go func() {
		wg.Wait()
		close(done)
		logging.Msg(ctx).Debug("errors handlers - stop")
	}()
	return done
}

// LoggingErrorHandler just logs everything it receives.
func LoggingErrorHandler(cerr <-chan errs.Error, wg *sync.WaitGroup) {
	defer wg.Done()
	for err := range cerr {
		logging.LogError(err)
	}
}

// CriticalErrorHandlerBuilder logs critical errors and cancels the run
// when the error kind is one of cancelKinds.
func CriticalErrorHandlerBuilder(cancel context.CancelFunc, cancelKinds []errs.Kind) FuncErrorHandler {
	kinds := make(map[errs.Kind]bool, len(cancelKinds))
	for _, kind := range cancelKinds {
		kinds[kind] = true
	}
	return func(cerr <-chan errs.Error, wg *sync.WaitGroup) {
		defer wg.Done()
		for err := range cerr {
			logging.LogError(err)
			if kinds[err.Kind()] {
				cancel()
			}
		}
	}
}
