package desktop

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogSink writes front-end log messages as "[LEVEL] message" lines. Error
// messages go to the error stream, everything else to the output stream.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink writing to out and errOut.
func NewLogSink(out, errOut io.Writer) *LogSink {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeLevel:      bracketLevelEncoder,
		ConsoleSeparator: " ",
	})

	errorsOnly := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.ErrorLevel
	})
	belowErrors := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l < zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(errOut)), errorsOnly),
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), belowErrors),
	)
	return &LogSink{logger: zap.New(core)}
}

// NewStdLogSink creates a sink on the process stdout and stderr.
func NewStdLogSink() *LogSink {
	return NewLogSink(os.Stdout, os.Stderr)
}

// Log writes message at level. Level matching ignores case; error, warn and
// info map to their severities and anything else is logged as debug.
func (s *LogSink) Log(level, message string) {
	switch strings.ToLower(level) {
	case "error":
		s.logger.Error(message)
	case "warn":
		s.logger.Warn(message)
	case "info":
		s.logger.Info(message)
	default:
		s.logger.Debug(message)
	}
}

// Sync flushes buffered output.
func (s *LogSink) Sync() error {
	return s.logger.Sync()
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}
