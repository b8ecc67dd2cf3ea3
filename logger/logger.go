// Package logger holds the process-wide zap logger. Commands install it once
// at startup with Init; other packages fetch it with Log or S.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logMu sync.RWMutex
	log   *zap.Logger
	sugar *zap.SugaredLogger
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	debug bool
)

// Init installs a JSON logger at info level, or a console logger at debug
// level when debug is set. Calling it again with the same mode keeps the
// current logger.
func Init(debugMode bool) error {
	logMu.RLock()
	same := log != nil && debug == debugMode
	logMu.RUnlock()
	if same {
		return nil
	}

	var cfg zap.Config
	if debugMode {
		cfg = zap.NewDevelopmentConfig()
		level.SetLevel(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		level.SetLevel(zapcore.InfoLevel)
	}
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	setLogger(l, debugMode)
	return nil
}

// InitProduction is Init(false).
func InitProduction() error {
	return Init(false)
}

// InitDevelopment is Init(true).
func InitDevelopment() error {
	return Init(true)
}

// SetDebug switches the installed logger between debug and info level
// without rebuilding it.
func SetDebug(on bool) {
	if on {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

func setLogger(l *zap.Logger, debugMode bool) {
	logMu.Lock()
	defer logMu.Unlock()
	zap.ReplaceGlobals(l)
	if log != nil {
		_ = log.Sync()
	}
	log = l
	sugar = l.Sugar()
	debug = debugMode
}

// Log returns the installed logger, or zap's global (a no-op until replaced).
func Log() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	if log != nil {
		return log
	}
	return zap.L()
}

// S is the sugared counterpart of Log.
func S() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	if sugar != nil {
		return sugar
	}
	return zap.S()
}

// Sync flushes buffered log entries.
func Sync() {
	logMu.RLock()
	defer logMu.RUnlock()
	if log != nil {
		_ = log.Sync()
	}
}
