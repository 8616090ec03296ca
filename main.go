package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	conf "github.com/heetch/confita"
	"github.com/heetch/confita/backend/env"
	"github.com/heetch/confita/backend/file"
	"github.com/heetch/confita/backend/flags"
	log "github.com/sirupsen/logrus"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	"github.com/nj-eka/ArtistPairsGo/errs"
	errflow "github.com/nj-eka/ArtistPairsGo/errsflow"
	"github.com/nj-eka/ArtistPairsGo/fh"
	"github.com/nj-eka/ArtistPairsGo/logging"
	"github.com/nj-eka/ArtistPairsGo/output"
	"github.com/nj-eka/ArtistPairsGo/workflow"
)

const (
	DefaultInputPattern      = "Artist_lists_small.txt"
	DefaultMinTimes          = 50
	DefaultDry               = true
	DefaultVerbose           = false
	DefaultDQuesWorkersCount = 2
	DefaultDquesResume       = true
	DefaultDquesTurbo        = false
	DefaultDquesSegmentSize  = 64 * 1024
)

var (
	AppName           = filepath.Base(os.Args[0])
	DefaultConfigFile = "config.yml"
	DefaultLogFile    = fmt.Sprintf("%s.log", AppName)
	DefaultTraceFile  = fmt.Sprintf("%s.trace.out", AppName)
	DefaultDquesDir   = "data/dques/"
	DefaultMaxLoaders = 1
	DefaultMaxParsers = runtime.NumCPU() * 4
	DefaultMaxFolders = runtime.NumCPU()
)

type Config struct {
	// logging output file, if empty then os.Stdout
	LogFile string `config:"log,description=Path to logging output file (empty = os.Stdout)" yaml:"log_file"`
	// logrus logging levels: panic, fatal, error, warn / warning, info, debug, trace
	LogLevel string `config:"log_level,short=l,description=Logging level: panic fatal error warn info debug trace" yaml:"log_level"`
	// supported logging formats: text, json
	LogFormat string `config:"log_format,description=Logging format: text json" yaml:"log_format"`
	// Go execution tracer output file (tracing is on if LogLevel == trace)
	TraceFile string `config:"trace,description=Trace output file (tracing is on if LogLevel == trace)" yaml:"trace_file"`

	// Execution mode without modification (input files are not renamed when consumed)
	IsDry bool `config:"dry,description=Execution mode without modification" yaml:"is_dry"`
	// input files pattern. example: ./data/Artist_lists_*.txt
	Input string `config:"input,short=i,description=Input files pattern" yaml:"input"`
	// pair is reported when its count is strictly greater than min_times
	MinTimes int `config:"min_times,short=m,description=Exclusive lower bound on pair count for reporting" yaml:"min_times"`

	// Display processing statistics (os.Stdout)
	Verbose bool `config:"verbose,short=v,description=Display processing statistics (os.Stdout)" yaml:"verbose"`
	// Max count of loaders (max number of open input files)
	MaxLoaders int `config:"loaders,description=Max count of loaders (max number of open input files)" yaml:"max_loaders_count"`
	// Max count of concurrent line parsing workers
	MaxParsers int `config:"parsers,description=Max count of parsers" yaml:"max_parsers_count"`
	// Max count of concurrent pair counting workers
	MaxFolders int `config:"folders,description=Max count of pair counting workers" yaml:"max_folders_count"`

	DQuesDir          string `config:"dques,description=Dqueue directory" yaml:"dques_dir"`
	DQuesWorkersCount int    `config:"buffers,description=Durable buffers count" yaml:"dques_buffers_count"`
	DQueResume        bool   `config:"resume,description=Resume from previous sessions" yaml:"dques_resume"`
	DQuesTurbo        bool   `config:"turbo,description=Dqueue turbo mode" yaml:"dques_turbo"`
	DQuesSegmentSize  int    `config:"segment,description=Items per dqueue segment" yaml:"dques_segment_size"`
}

var cfg = Config{
	LogFile:           DefaultLogFile,
	LogLevel:          logging.DefaultLevel.String(),
	LogFormat:         logging.DefaultFormat,
	TraceFile:         DefaultTraceFile,
	IsDry:             DefaultDry,
	Input:             DefaultInputPattern,
	MinTimes:          DefaultMinTimes,
	Verbose:           DefaultVerbose,
	MaxLoaders:        DefaultMaxLoaders,
	MaxParsers:        DefaultMaxParsers,
	MaxFolders:        DefaultMaxFolders,
	DQuesDir:          DefaultDquesDir,
	DQuesWorkersCount: DefaultDQuesWorkersCount,
	DQueResume:        DefaultDquesResume,
	DQuesTurbo:        DefaultDquesTurbo,
	DQuesSegmentSize:  DefaultDquesSegmentSize,
}

var (
	currentUser *user.User
	inputFiles  []string
	startTime   = time.Now()
)

func init() {
	ctx := cu.BuildContext(context.Background(), cu.SetContextOperation("00.init"))
	var err error
	loader := conf.NewLoader(
		file.NewBackend(DefaultConfigFile),
		env.NewBackend(),
		flags.NewBackend(),
	)
	if err = loader.Load(ctx, &cfg); err != nil {
		logging.LogError(ctx, errs.SeverityCritical, errs.KindInvalidValue, fmt.Errorf("invalid config: %w", err))
		log.Exit(1)
	}
	if err = logging.Initialize(ctx, cfg.LogFile, cfg.LogLevel, cfg.LogFormat, cfg.TraceFile, currentUser); err != nil {
		logging.LogError(err)
		log.Exit(1)
	}
	if cfg.Input, err = fh.ResolvePath(cfg.Input, currentUser); err != nil {
		logging.LogError(ctx, errs.SeverityCritical, errs.KindInvalidValue, fmt.Errorf("invalid input pattern: %w", err))
		log.Exit(1)
	}
	if inputFiles, err = filepath.Glob(cfg.Input); err != nil {
		logging.LogError(ctx, errs.SeverityCritical, errs.KindInvalidValue, fmt.Errorf("invalid input pattern: %w", err))
		log.Exit(1)
	}
	if cfg.DQuesDir, err = fh.ResolvePath(cfg.DQuesDir, currentUser); err != nil {
		logging.LogError(ctx, errs.SeverityCritical, errs.KindInvalidValue, fmt.Errorf("invalid dbuffer dir [%s]: %w", cfg.DQuesDir, err))
		log.Exit(1)
	}
	if err = os.MkdirAll(cfg.DQuesDir, 0755); err != nil {
		logging.LogError(ctx, errs.SeverityCritical, errs.KindInvalidValue, fmt.Errorf("create dbuffer dir [%s] failed: %w", cfg.DQuesDir, err))
		log.Exit(1)
	}
	cfgJson, _ := json.Marshal(cfg)
	logging.Msg(ctx).Infof("%s started with pid %d", AppName, os.Getpid())
	logging.Msg(ctx).Debugf("options: %v", string(cfgJson))
}

func allDone(ds []<-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for i := 0; i < len(ds); i++ {
			<-ds[i]
		}
		close(done)
	}()
	return done
}

func main() {
	defer logging.Finalize()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx = cu.BuildContext(ctx, cu.SetContextOperation("0.main"))
	defer cancel()

	if len(inputFiles) == 0 {
		logging.LogError(ctx, errs.SeverityError, errs.KindNotExist, fmt.Errorf("no files found for pattern %s", cfg.Input))
		fmt.Println("Error: File could not be loaded")
		return
	}

	// workflow init
	loader := workflow.NewLoader(ctx, cfg.MaxLoaders, currentUser, cfg.IsDry, cfg.Verbose)
	parser := workflow.NewParser(ctx, cfg.MaxParsers, cfg.Verbose)
	dbuf, err := workflow.NewDBuffer(ctx, cfg.DQuesWorkersCount, cfg.DQuesDir, cfg.DQuesSegmentSize, cfg.DQueResume, cfg.DQuesTurbo, cfg.Verbose)
	if err != nil {
		logging.LogError(err)
		return
	}
	counter := workflow.NewPairCounter(ctx, cfg.MaxFolders, cfg.Verbose)

	errsMonitor := errflow.LaunchErrorHandlers(ctx, cancel, cfg.Verbose, loader.ErrCh(), parser.ErrCh(), dbuf.ErrCh(), counter.ErrCh())
	finish := allDone([]<-chan struct{}{loader.Done(), parser.Done(), dbuf.Done(), counter.Done(), errsMonitor.Done})

	// start processing
	loader.Run(ctx, inputFiles)
	parser.Run(ctx, loader.ResCh())
	dbuf.Run(ctx, parser.ResCh())
	counter.Run(ctx, dbuf.ResCh())

mainloop:
	for {
		select {
		case <-ctx.Done():
			logging.Msg(ctx).Errorf("processing - interrupted: %v", ctx.Err())
			fmt.Println("stopping...\nwait for all processes to complete safely")
			break mainloop
		case <-finish:
			logging.Msg(ctx).Debug("processing - done")
			break mainloop
		case <-time.After(1 * time.Second):
			if cfg.Verbose {
				output.PrintProcessMonitors(startTime, loader, parser, dbuf, counter, errsMonitor)
			}
		}
	}
	<-finish
	if cfg.Verbose {
		output.PrintProcessMonitors(startTime, loader, parser, dbuf, counter, errsMonitor)
	}

	if ctx.Err() != nil {
		// input was not fully consumed - no report for this run
		fmt.Fprintln(os.Stderr, "Error: input could not be processed, no report produced")
		return
	}
	reporter := workflow.NewReporter(ctx, counter.Aggregator(), cfg.MinTimes, os.Stdout)
	if _, rerr := reporter.Report(ctx); rerr != nil {
		logging.LogError(rerr)
	}
}
