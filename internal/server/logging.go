package server

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogging initializes the logging module. In production all logs
// are saved to the configured file. In development the same logs are
// printed to standard output as well. Stacktraces are added from error
// level. All logs come with commit & tag value.
func SetupLogging(config *Config) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(config.LogFile), 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create logging folder: %s", err)
	}
	logFile, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logging file: %s", err)
	}

	zapConfig := zap.NewProductionEncoderConfig()
	if !config.IsProduction {
		zapConfig = zap.NewDevelopmentEncoderConfig()
	}
	zapConfig.TimeKey = "timestamp"
	zapConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.LevelKey = "level"
	zapConfig.NameKey = "name"
	zapConfig.MessageKey = "msg"
	zapConfig.CallerKey = "caller"
	zapConfig.StacktraceKey = "stacktrace"
	fileEncoder := zapcore.NewJSONEncoder(zapConfig)

	var zapCore zapcore.Core
	if config.IsProduction {
		zapCore = zapcore.NewTee(zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), config.LogLevel))
	} else {
		consoleEncoder := zapcore.NewConsoleEncoder(zapConfig)
		zapCore = zapcore.NewTee(
			zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), config.LogLevel),
			zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), config.LogLevel))
	}

	logger := zap.New(zapCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	logger = logger.With(zap.String("commit", config.GitCommit), zap.String("tag", config.GitTag))

	flusher := func() {
		if err := logger.Sync(); err != nil {
			log.Println("error during flushing any buffered log entries:", err)
		}
		if err := logFile.Close(); err != nil {
			log.Println("error during closing of log file:", err)
		}
	}

	return logger, flusher, nil
}
