package output

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"time"

	cu "github.com/nj-eka/ArtistPairsGo/ctxutils"
	erf "github.com/nj-eka/ArtistPairsGo/errsflow"
	"github.com/nj-eka/ArtistPairsGo/fh"
	"github.com/nj-eka/ArtistPairsGo/logging"
	"github.com/nj-eka/ArtistPairsGo/regs"
	"github.com/nj-eka/ArtistPairsGo/workflow"
)

const (
	upLeft     = "\n\033[H\033[2J"
	colorReset = "\033[0m"

	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

// PrintProcessMonitors renders the live pipeline dashboard to stdout.
// Intermediate numbers are sampled at different moments and may disagree
// slightly while the run is in progress; the final print is consistent.
func PrintProcessMonitors(startTime time.Time, statProducers ...workflow.StatProducer) {
	ctx := cu.BuildContext(nil, cu.SetContextOperation("print_monitors"))
	bufOut := bufio.NewWriter(os.Stdout)
	bout := func(s string) {
		if _, err := bufOut.WriteString(s); err != nil {
			logging.LogError(ctx, fmt.Errorf("bufio write string [%s] failed: %w", s, err))
		}
	}
	var (
		loaderStats  *workflow.LoaderStats
		parserStats  *workflow.ParserStats
		dbufStats    *workflow.DBufferStats
		counterStats *workflow.CounterStats
		errsStats    regs.Decounter
	)
	for _, statProducer := range statProducers {
		if statProducer == nil {
			continue
		}
		switch st := statProducer.Stats().(type) {
		case *workflow.LoaderStats:
			loaderStats = st
		case *workflow.ParserStats:
			parserStats = st
		case *workflow.DBufferStats:
			dbufStats = st
		case *workflow.CounterStats:
			counterStats = st
		case regs.Decounter:
			errsStats = st
		}
	}

	bout(fmt.Sprintln(upLeft))
	bout(fmt.Sprintln("Time elapsed: ", time.Since(startTime).Round(time.Second)))

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	bout(fmt.Sprint(colorCyan, "Mem.usage stats:"))
	bout(fmt.Sprintf("\tAlloc = %v", fh.BytesToHuman(ms.Alloc)))
	bout(fmt.Sprintf("\tTotalAlloc = %v", fh.BytesToHuman(ms.TotalAlloc)))
	bout(fmt.Sprintf("\tSys = %v", fh.BytesToHuman(ms.Sys)))
	bout(fmt.Sprintf("\tNumGC = %v\n", ms.NumGC))
	bout(fmt.Sprint(colorReset))

	if loaderStats != nil {
		since := time.Since(loaderStats.StartTime)
		status := "in progress"
		if !loaderStats.FinishTime.IsZero() {
			since = loaderStats.FinishTime.Sub(loaderStats.StartTime)
			status = "done"
		}
		bout(fmt.Sprint(colorBlue))
		bout(fmt.Sprintf("Loader stats (read): %s - %v\n", status, since.Seconds()))
		lines, bytes := loaderStats.ItemsCounter.GetCountScore()
		bout(fmt.Sprintf("%8s(lines: %8s/s)", fh.BytesToHuman(uint64(lines)), fh.BytesToHuman(uint64(math.Ceil(float64(lines)/since.Seconds())))))
		bout(fmt.Sprintf("%8s(bytes: %8s/s)", fh.BytesToHuman(uint64(bytes)), fh.BytesToHuman(uint64(math.Ceil(float64(bytes)/since.Seconds())))))
		bout(fmt.Sprintf("%3d(files)\n", loaderStats.FilesCounter.GetScore()))
	}

	if parserStats != nil {
		bout(fmt.Sprint(colorGreen, "Parser stats (records):\n"))
		records, _ := parserStats.ItemsCounter.GetCountScore()
		bout(fmt.Sprintf("%8s(records)", fh.BytesToHuman(uint64(records))))
		bout(fmt.Sprintf("%8s(bytes in)", fh.BytesToHuman(uint64(parserStats.InputBytesCounter.GetScore()))))
		bout(fmt.Sprintf("%8s(bytes out)\n", fh.BytesToHuman(uint64(parserStats.OutputBytesCounter.GetScore()))))
	}

	if dbufStats != nil {
		bout(fmt.Sprint(colorYellow, "DBuffer stats (dque):\n"))
		for _, workerName := range dbufStats.InputStats.SortByName() {
			upSince, upStatus := time.Since(dbufStats.StartTime), "in progress"
			if !dbufStats.InputStats[workerName].EndTime.IsZero() {
				upSince, upStatus = dbufStats.InputStats[workerName].EndTime.Sub(dbufStats.StartTime), "done"
			}
			outSince, outStatus := upSince, "in progress"
			if !dbufStats.OutputStats[workerName].EndTime.IsZero() {
				outSince, outStatus = dbufStats.OutputStats[workerName].EndTime.Sub(dbufStats.StartTime), "done"
			}
			inputItems, inputBytes := dbufStats.InputStats[workerName].ItemsCounter.GetCountScore()
			outputItems, outputBytes := dbufStats.OutputStats[workerName].ItemsCounter.GetCountScore()
			bout(fmt.Sprintf(
				"%12s: -> %12s - %6fs / -> %12s - %6fs; %8s/%-8s (items)\t",
				workerName,
				upStatus,
				upSince.Seconds(),
				outStatus,
				outSince.Seconds(),
				fh.BytesToHuman(uint64(inputItems)),
				fh.BytesToHuman(uint64(outputItems)),
			))
			bout(fmt.Sprintf(
				"%8s/%-8s (bytes)\n",
				fh.BytesToHuman(uint64(inputBytes)),
				fh.BytesToHuman(uint64(outputBytes)),
			))
		}
	}

	if counterStats != nil {
		since := time.Since(counterStats.StartTime)
		status := "in progress"
		if !counterStats.FinishTime.IsZero() {
			since = counterStats.FinishTime.Sub(counterStats.StartTime)
			status = "done"
		}
		bout(fmt.Sprint(colorPurple))
		bout(fmt.Sprintf("Counter stats (pairs): %s - %v\n", status, since.Seconds()))
		records, bytes := counterStats.RecordsCounter.GetCountScore()
		_, pairIncrements := counterStats.PairsCounter.GetCountScore()
		bout(fmt.Sprintf("%8s(records)", fh.BytesToHuman(uint64(records))))
		bout(fmt.Sprintf("%8s(bytes)", fh.BytesToHuman(uint64(bytes))))
		bout(fmt.Sprintf("%8s(pair increments)\n", fh.BytesToHuman(uint64(pairIncrements))))
	}

	if errsStats != nil {
		cp := errsStats.GetCounterPairs()
		if len(cp) > 0 {
			bout(fmt.Sprintln(colorRed, "Errors:"))
			sort.Sort(regs.CounterPairsByKey(cp))
			for _, cp := range cp {
				esk := cp.Key.(erf.ErrStatKey)
				bout(fmt.Sprintf(" *%-8s: %-48s # %4d - %s\n", esk.Severity, esk.Operations, cp.Count, esk.Kind))
			}
		}
	}

	bout(fmt.Sprint(colorReset))

	if err := bufOut.Flush(); err != nil {
		logging.LogError(ctx, fmt.Errorf("bufio flush failed: %w", err))
	}
}
