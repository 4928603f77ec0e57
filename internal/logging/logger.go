//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package logging provides module-scoped structured loggers built on zap.
//
// Loggers are obtained with [GetLogger] and keyed by module name. Every
// record carries actor, action and module fields so that log streams from
// concurrent rule evaluation remain attributable.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a wrapper around zap.Logger carrying a module identity.
type Logger struct {
	module string
	sugar  *zap.SugaredLogger
	level  zapcore.Level
	writer io.Writer
}

const (
	actor     = "actor"
	action    = "action"
	module    = "module"
	defActor  = "sys"
	defAction = "unk"
)

func buildCore(w io.Writer, level zapcore.Level) zapcore.Core {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	var encoder zapcore.Encoder
	switch os.Getenv("LOG_FORMATTER") {
	case "text":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	return zapcore.NewCore(encoder, zapcore.AddSync(w), level)
}

// internal constructor. Applications should call GetLogger() to retrieve a
// configured logger.
func newLogger(mod string) *Logger {
	logger := zap.New(buildCore(os.Stdout, zapcore.InfoLevel), zap.AddCallerSkip(1))
	return &Logger{
		module: mod,
		sugar:  logger.Sugar(),
		level:  zapcore.InfoLevel,
	}
}

// IsDebugEnabled returns true if the current logging level is debug or
// higher. Use it to guard debug output that is expensive to compute.
func (l *Logger) IsDebugEnabled() bool {
	return l.level <= zapcore.DebugLevel
}

// SetLevel sets the logging level, rebuilding the underlying core.
func (l *Logger) SetLevel(level zapcore.Level) {
	l.level = level
	var output io.Writer = os.Stdout
	if l.writer != nil {
		output = l.writer
	}
	l.sugar = zap.New(buildCore(output, level), zap.AddCallerSkip(1)).Sugar()
}

// SetOut redirects log output, primarily for tests.
func (l *Logger) SetOut(w io.Writer) {
	l.writer = w
	l.sugar = zap.New(buildCore(w, l.level), zap.AddCallerSkip(1)).Sugar()
}

func (l *Logger) with(actorID, actionID string) *zap.SugaredLogger {
	return l.sugar.With(
		zap.String(actor, actorID),
		zap.String(action, actionID),
		zap.String(module, l.module),
	)
}

// Debug logs a debug message.
func (l *Logger) Debug(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Debug(args...)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Info(args...)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Warn(args...)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Error(args...)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Errorf(format, args...)
}

// Fatalf logs a fatal message and exits.
func (l *Logger) Fatalf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Fatalf(format, args...)
}

// SysDebugf logs a debug message with default actor and action.
func (l *Logger) SysDebugf(format string, args ...interface{}) {
	l.Debugf(defActor, defAction, format, args...)
}

// SysInfof logs an info message with default actor and action.
func (l *Logger) SysInfof(format string, args ...interface{}) {
	l.Infof(defActor, defAction, format, args...)
}

// SysWarnf logs a warning message with default actor and action.
func (l *Logger) SysWarnf(format string, args ...interface{}) {
	l.Warnf(defActor, defAction, format, args...)
}

// SysErrorf logs an error message with default actor and action.
func (l *Logger) SysErrorf(format string, args ...interface{}) {
	l.Errorf(defActor, defAction, format, args...)
}
