package logsvc

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unitrack/unitrack/core"
)

// ZapLogger is the default core.Logger, backed by a zap.SugaredLogger.
type ZapLogger struct {
	sugar   *zap.SugaredLogger
	enabled bool
}

var _ core.Logger = (*ZapLogger)(nil)

func NewZapLogger(conf *core.Config) *ZapLogger {
	var zconf zap.Config
	if conf.Debug {
		zconf = zap.NewDevelopmentConfig()
	} else {
		zconf = zap.NewProductionConfig()
		zconf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zlog, err := zconf.Build(zap.AddCallerSkip(1))
	if err != nil {
		// logging is not optional
		os.Exit(1)
	}
	return &ZapLogger{
		sugar:   zlog.Sugar().With("app", conf.AppName, "env", conf.Env, "build", conf.Build),
		enabled: true,
	}
}

// NewNopLogger discards everything. Test use.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar(), enabled: true}
}

func (l *ZapLogger) Enable(enabled bool) { l.enabled = enabled }

// args are alternating key/value pairs; a trailing error is logged under
// the "error" key.
func (l *ZapLogger) prepare(args []interface{}) []interface{} {
	if n := len(args); n > 0 {
		if err, ok := args[n-1].(error); ok {
			newArgs := make([]interface{}, 0, n+1)
			newArgs = append(newArgs, args[:n-1]...)
			return append(newArgs, "error", err)
		}
	}
	return args
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	if l.enabled {
		l.sugar.Debugw(msg, l.prepare(args)...)
	}
}

func (l *ZapLogger) Info(msg string, args ...interface{}) {
	if l.enabled {
		l.sugar.Infow(msg, l.prepare(args)...)
	}
}

func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	if l.enabled {
		l.sugar.Warnw(msg, l.prepare(args)...)
	}
}

func (l *ZapLogger) Error(msg string, args ...interface{}) {
	if l.enabled {
		l.sugar.Errorw(msg, l.prepare(args)...)
	}
}

func (l *ZapLogger) Fatal(msg string, args ...interface{}) {
	l.sugar.Fatalw(msg, l.prepare(args)...)
}

// Sync flushes buffered log entries. Call on shutdown.
func (l *ZapLogger) Sync() error { return l.sugar.Sync() }
