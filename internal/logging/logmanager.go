//
//  Copyright © Manetu Inc. All rights reserved.
//

package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// LogManager keeps track of all instantiated loggers.
type LogManager struct {
	loggers  map[string]*Logger
	defLevel zapcore.Level
}

var (
	manager *LogManager
	mu      sync.RWMutex
	once    sync.Once
)

func initManager() {
	level := zapcore.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := zapcore.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}
	manager = &LogManager{
		loggers:  make(map[string]*Logger),
		defLevel: level,
	}
}

// GetLogger returns the logger registered for the specified module,
// creating it with the manager's default level on first use.
func GetLogger(mod string) *Logger {
	once.Do(initManager)

	mu.RLock()
	if l := manager.loggers[mod]; l != nil {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	if l := manager.loggers[mod]; l != nil {
		return l
	}

	l := newLogger(mod)
	if manager.defLevel != zapcore.InfoLevel {
		l.SetLevel(manager.defLevel)
	}
	manager.loggers[mod] = l
	return l
}

// UpdateLogLevels applies a level specification of the form
// "module:level[,module:level...]". The module "." sets the default level
// for every logger, current and future.
func UpdateLogLevels(spec string) error {
	for _, clause := range strings.Split(spec, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		mod, lvl, ok := strings.Cut(clause, ":")
		if !ok {
			return errors.Errorf("malformed log level clause %q", clause)
		}
		mod = strings.TrimSpace(mod)
		level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(lvl)))
		if err != nil {
			return errors.Wrapf(err, "invalid log level in clause %q", clause)
		}
		if mod == "." {
			SetAllLevels(level)
		} else {
			GetLogger(mod).SetLevel(level)
		}
	}
	return nil
}

// SetAllLevels applies a logging level to every registered logger and makes
// it the default for loggers created later.
func SetAllLevels(level zapcore.Level) {
	once.Do(initManager)

	mu.Lock()
	defer mu.Unlock()

	manager.defLevel = level
	for _, l := range manager.loggers {
		l.SetLevel(level)
	}
}
