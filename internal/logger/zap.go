package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// Output formats accepted by Options.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures a logger. Zero values mean info level, console
// format and stderr, which keeps stdout free for CLI output.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// parseLevel accepts every zap level name; unknown names fall back to info.
func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	if format == FormatJSON {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// NewWithOptions builds a standalone sugared logger that annotates entries
// with the calling file and line.
func NewWithOptions(o Options) *Logger {
	out := o.Output
	if out == nil {
		out = os.Stderr
	}
	core := zapcore.NewCore(newEncoder(o.Format), zapcore.Lock(zapcore.AddSync(out)), zap.NewAtomicLevelAt(parseLevel(o.Level)))
	return &Logger{
		SugaredLogger: zap.New(core, zap.AddCaller()).Sugar(),
	}
}
