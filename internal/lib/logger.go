package lib

import (
	"io"
	"os"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02T15:04:05"

// LogOptions describes the output format shared by all component loggers
type LogOptions struct {
	Color    bool
	IsProd   bool
	JSON     bool
	FilePath string // empty disables file logging
}

type Logger struct {
	*zap.SugaredLogger
}

func NewLogger(level string, opts LogOptions) (*Logger, error) {
	return newSugared(level, opts, nil)
}

// NewLoggerMemory additionally writes every entry to wr, used to assert log output in tests
func NewLoggerMemory(level string, opts LogOptions, wr io.Writer) (*Logger, error) {
	return newSugared(level, opts, wr)
}

// NewTestLogger logs only to stdout
func NewTestLogger() *Logger {
	l, _ := newSugared("debug", LogOptions{}, nil)
	return l
}

func (l *Logger) Named(name string) interfaces.ILogger {
	return &Logger{l.SugaredLogger.Named(name)}
}

func (l *Logger) With(args ...interface{}) interfaces.ILogger {
	return &Logger{l.SugaredLogger.With(args...)}
}

func newSugared(levelStr string, opts LogOptions, extraWriter io.Writer) (*Logger, error) {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(opts.IsProd, opts.Color, opts.JSON), zapcore.AddSync(os.Stdout), level),
	}

	if opts.FilePath != "" {
		file, err := os.OpenFile(opts.FilePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(newEncoder(opts.IsProd, false, opts.JSON), zapcore.AddSync(file), level))
	}

	if extraWriter != nil {
		cores = append(cores, zapcore.NewCore(newEncoder(false, false, false), zapcore.AddSync(extraWriter), level))
	}

	zapOpts := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
	if !opts.IsProd {
		zapOpts = append(zapOpts, zap.Development())
	}

	return &Logger{zap.New(zapcore.NewTee(cores...), zapOpts...).Sugar()}, nil
}

func newEncoder(isProd, color, isJSON bool) zapcore.Encoder {
	var encoderCfg zapcore.EncoderConfig
	if isProd {
		encoderCfg = zap.NewProductionEncoderConfig()
	} else {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	}

	if isJSON {
		return zapcore.NewJSONEncoder(encoderCfg)
	}
	if color {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderCfg)
}
