package debug

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "/tmp/mother-debug.log"

var (
	once    sync.Once
	logger  *zap.Logger
	mu      sync.Mutex
	logFile = defaultLogFile
)

// SetLogFile changes the log destination. Only effective before the first GetLogger call.
func SetLogFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	if path != "" {
		logFile = path
	}
}

// GetLogger returns a singleton zap logger instance.
// The terminal owns stdout, so everything goes to a file.
func GetLogger() *zap.Logger {
	once.Do(func() {
		mu.Lock()
		path := logFile
		mu.Unlock()

		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		var err error
		logger, err = config.Build()
		if err != nil {
			logger = zap.NewNop()
		}
	})
	return logger
}
