package logging

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"runtime/trace"

	"github.com/nj-eka/ArtistPairsGo/errs"
	"github.com/nj-eka/ArtistPairsGo/fh"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeFormat = "2006-01-02 15:04:05.000"
	DefaultFormat     = "text"
)

var DefaultLevel = logrus.InfoLevel

var (
	logFile   *os.File
	traceFile *os.File
)

// Initialize sets up logrus output / level / format and starts execution tracing
// when level is trace and traceFileName is set.
func Initialize(ctx context.Context, logFileName, logLevelName, logFormat, traceFileName string, usr *user.User) error {
	level, err := logrus.ParseLevel(logLevelName)
	if err != nil {
		level = DefaultLevel
	}
	logrus.SetLevel(level)

	switch logFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: DefaultTimeFormat})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{TimestampFormat: DefaultTimeFormat, FullTimestamp: true})
	}

	if logFileName != "" {
		logFilePath, err := fh.ResolvePath(logFileName, usr)
		if err != nil {
			return fmt.Errorf("resolving log file [%s] failed: %w", logFileName, err)
		}
		if logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return fmt.Errorf("opening log file [%s] failed: %w", logFilePath, err)
		}
		logrus.SetOutput(logFile)
	} else {
		logrus.SetOutput(os.Stdout)
	}

	if level >= logrus.TraceLevel && traceFileName != "" {
		traceFilePath, err := fh.ResolvePath(traceFileName, usr)
		if err != nil {
			return fmt.Errorf("resolving trace file [%s] failed: %w", traceFileName, err)
		}
		if traceFile, err = os.Create(traceFilePath); err != nil {
			return fmt.Errorf("creating trace file [%s] failed: %w", traceFilePath, err)
		}
		if err = trace.Start(traceFile); err != nil {
			return fmt.Errorf("starting trace failed: %w", err)
		}
	}
	return nil
}

// Finalize stops tracing and closes logging outputs.
func Finalize() {
	if traceFile != nil {
		trace.Stop()
		_ = traceFile.Close()
		traceFile = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// LogError builds errs.Error from args (see errs.E) and logs it according to its severity.
func LogError(args ...interface{}) {
	err := errs.E(args...)
	entry := logrus.WithFields(logrus.Fields{
		"rec":  "err",
		"ops":  err.OperationPath().String(),
		"kind": err.Kind().String(),
	})
	switch err.Severity() {
	case errs.SeverityWarning:
		entry.Warn(err.Error())
	case errs.SeverityCritical:
		entry.Error(err.Error())
		for _, frame := range err.StackTrace() {
			entry.Debug(frame.String())
		}
	default:
		entry.Error(err.Error())
	}
}

// GetSeveritiesFilter4CurrentLogLevel returns severities worth handling at current log level.
func GetSeveritiesFilter4CurrentLogLevel() []errs.Severity {
	if logrus.GetLevel() >= logrus.WarnLevel {
		return errs.AllSeverities
	}
	return []errs.Severity{errs.SeverityError, errs.SeverityCritical}
}
