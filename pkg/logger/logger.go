package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/onurcolak/broadcast-hub/environments"
)

// sugar is a no-op until Init is called, so packages can log from tests.
var sugar = zap.NewNop().Sugar()

// Init builds the process logger (called once from main). Output goes to
// stdout, and additionally to a rotating file when cfg.File is set.
func Init(cfg environments.LogConfig) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level.SetLevel(parsed)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.AddSync(os.Stdout)
	if cfg.File != "" {
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, level)
	log := zap.New(core)
	zap.ReplaceGlobals(log)

	sugar = log.Sugar()
}

func Infof(format string, v ...any) {
	sugar.Infof(format, v...)
}

func Warnf(format string, v ...any) {
	sugar.Warnf(format, v...)
}

func Errorf(format string, v ...any) {
	sugar.Errorf(format, v...)
}

func Debugf(format string, v ...any) {
	sugar.Debugf(format, v...)
}

func Fatalf(format string, v ...any) {
	sugar.Fatalf(format, v...)
}

// Sync flushes buffered entries.
func Sync() error {
	return sugar.Sync()
}
