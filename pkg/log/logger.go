package log

import (
	"fmt"
	"log/slog"
	"os"
)

// SetupLogger installs the package's JSON logger as the slog default.
//
// Output goes to stdout with source locations enabled and stacktraces
// extracted from cockroachdb/errors values (see ErrFmtHandler). Level must be
// one of "debug", "info", "warn" or "error". Library code never calls this;
// it is for binaries such as the evaluation examples.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
		// Rename the standard keys to the Cloud Logging field names so the
		// output is ingestible without a parsing layer.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			case slog.SourceKey:
				attr = slog.Attr{
					Key:   "logging.googleapis.com/sourceLocation",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel maps a level name to its slog level. Unknown names panic; the
// level is operator input fixed at startup, not data.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	// ErrAttrKey is the attribute key ErrFmtHandler watches for.
	ErrAttrKey = "error"

	// StacktraceAttrKey carries the extracted stacktrace.
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr wraps an error as a slog attribute under ErrAttrKey, so its
// stacktrace is extracted by ErrFmtHandler on the way out.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}