package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

// Options controls where a ZapLogger writes. The file sink is always JSON
// and rotated; the console sink is optional.
type Options struct {
	FilePath   string
	Console    bool
	Production bool
	// MaxSizeMB and MaxBackups fall back to 10 and 5 when zero.
	MaxSizeMB  int
	MaxBackups int
}

type ZapLogger struct {
	logger *zap.Logger
}

func New(opts Options) *ZapLogger {
	cores := []zapcore.Core{
		zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotator(opts)), zap.InfoLevel),
	}

	if opts.Console {
		consoleEncoder := jsonEncoder()
		if !opts.Production {
			consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		}
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel))
	}

	// Skip 1 so the caller field points past the wrapper.
	return &ZapLogger{logger: zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))}
}

// NewZapLogger is the application logger: rotated JSON file plus stdout.
func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	return New(Options{FilePath: logFilePath, Console: true, Production: isProd})
}

// NewIsolatedLogger writes to its own file only. The notification sink uses
// it so dispatch noise stays out of the main log.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	return New(Options{FilePath: logFilePath})
}

func NewNopLogger() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

func rotator(opts Options) *lumberjack.Logger {
	maxSize, maxBackups := opts.MaxSizeMB, opts.MaxBackups
	if maxSize <= 0 {
		maxSize = 10
	}
	if maxBackups <= 0 {
		maxBackups = 5
	}
	return &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     30, // days
		Compress:   true,
	}
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.write(zapcore.DebugLevel, module, message, details)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.write(zapcore.InfoLevel, module, message, details)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.write(zapcore.WarnLevel, module, message, details)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.write(zapcore.ErrorLevel, module, message, details)
}

func (l *ZapLogger) write(level zapcore.Level, module, message string, details map[string]interface{}) {
	ce := l.logger.Check(level, message)
	if ce == nil {
		return
	}
	fields := []zap.Field{zap.String("module", module), zap.Any("details", fieldDetails(details))}
	if err, ok := details["error"].(error); ok {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}

// fieldDetails stringifies error values; zap.Any renders a bare error as {}.
func fieldDetails(details map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(details))
	for k, v := range details {
		if err, ok := v.(error); ok && err != nil {
			out[k] = err.Error()
			continue
		}
		out[k] = v
	}
	return out
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
