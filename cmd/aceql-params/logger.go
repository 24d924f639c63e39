package main

import (
	"fmt"

	"go.uber.org/zap"
)

type logLevel string

const (
	logLevelDebug logLevel = "debug"
	logLevelInfo  logLevel = "info"
	logLevelWarn  logLevel = "warn"
	logLevelError logLevel = "error"
)

type logFormat string

const (
	logFormatConsole logFormat = "console"
	logFormatJSON    logFormat = "json"
)

func newLogger(level logLevel, format logFormat) (*zap.Logger, error) {
	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(zap.ErrorLevel),
		Development:       false,
		Encoding:          "console",
		DisableStacktrace: true,
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	switch level {
	case logLevelDebug:
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case logLevelInfo:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case logLevelWarn:
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case logLevelError:
	default:
		return nil, fmt.Errorf("unexpected log level %s", level)
	}

	switch format {
	case logFormatConsole:
	case logFormatJSON:
		config.Encoding = "json"
	default:
		return nil, fmt.Errorf("unexpected log format %s", format)
	}

	return config.Build()
}
