package jwtsign

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes the ambient dependencies of an Issuer.
type Config struct {
	// Logger receives signing failures. Defaults to DefaultLogger().
	Logger *zap.Logger
	// Now is the clock used for iat and exp. Defaults to time.Now.
	Now func() time.Time
}

// normalize sets default values for optional fields.
func (c *Config) normalize() {
	if c.Logger == nil {
		c.Logger = DefaultLogger()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

var (
	defaultLoggerMu sync.Mutex
	defaultLogger   *zap.Logger

	// defaultLogOutput is where the fallback logger writes.
	defaultLogOutput zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
)

// DefaultLogger returns the logger used when Config.Logger is nil. Unless
// SetDefaultLogger was called it writes errors to stderr.
func DefaultLogger() *zap.Logger {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = newStderrLogger(defaultLogOutput)
	}
	return defaultLogger
}

// SetDefaultLogger replaces the logger used when Config.Logger is nil,
// including by the Issue* helpers. Passing nil restores the stderr logger.
func SetDefaultLogger(l *zap.Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}

func newStderrLogger(w zapcore.WriteSyncer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), w, zap.ErrorLevel)
	return zap.New(core).Named("jwtsign")
}
