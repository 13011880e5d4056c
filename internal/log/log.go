// Package log holds the shared go-kit logger.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the shared go-kit logger. It discards everything until
// InitLogger is called.
var Logger = kitlog.NewNopLogger()

// InitLogger builds a logfmt or json logger on stderr, filtered at logLevel,
// and installs it as Logger.
func InitLogger(logFormat, logLevel string) (kitlog.Logger, error) {
	return initLogger(os.Stderr, logFormat, logLevel)
}

func initLogger(w io.Writer, logFormat, logLevel string) (kitlog.Logger, error) {
	opt, err := parseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	writer := kitlog.NewSyncWriter(w)

	var logger kitlog.Logger

	switch strings.ToLower(logFormat) {
	case "", "logfmt":
		logger = kitlog.NewLogfmtLogger(writer)
	case "json":
		logger = kitlog.NewJSONLogger(writer)
	default:
		return nil, fmt.Errorf("unknown log format %q", logFormat)
	}

	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)

	// the level filter goes last
	logger = level.NewFilter(logger, opt)

	Logger = logger

	return logger, nil
}

func parseLevel(s string) (level.Option, error) {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none", "off":
		return level.AllowNone(), nil
	}

	return nil, fmt.Errorf("unknown log level %q", s)
}
