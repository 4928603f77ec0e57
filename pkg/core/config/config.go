//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package config provides configuration management for the validation
// engine using [Viper] for flexible configuration sources.
//
// Configuration can be provided via:
//   - YAML configuration files
//   - Environment variables with the DQC_ prefix
//   - Programmatic defaults
//
// # Configuration File
//
// By default, the engine looks for dqc-config.yaml in the current
// directory. Override the location using environment variables:
//
//	DQC_CONFIG_PATH=/etc/dqengine
//	DQC_CONFIG_FILENAME=production-config
//
// Example configuration file:
//
//	log:
//	  level: ".:info"
//	rules:
//	  suppress: "DQC.US.0001.75,DQC.US.0015"
//	eval:
//	  budget: 30s
//	  workers: 4
//	namespaces:
//	  dei: http://xbrl.sec.gov/dei/2023-01-31
//
// # Environment Variables
//
// All configuration keys can be set via environment variables with the
// DQC_ prefix. Dots in key names become underscores:
//
//	DQC_LOG_LEVEL=.:debug
//	DQC_RULES_SUPPRESS=DQC.US.0001.75
//	DQC_EVAL_BUDGET=10s
//
// [Viper]: https://github.com/spf13/viper
package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/xbrldq/dqengine/internal/logging"
)

// Environment variable and default path constants for configuration loading.
const (
	// EnvVarPrefix is the prefix for all validation engine environment
	// variables. For example, the key "log.level" becomes DQC_LOG_LEVEL.
	EnvVarPrefix string = "DQC"

	// ConfigPathEnv is the environment variable that specifies the directory
	// containing the configuration file.
	ConfigPathEnv string = "DQC_CONFIG_PATH"

	// ConfigFileNameEnv is the environment variable that specifies the
	// configuration file name (without extension).
	ConfigFileNameEnv string = "DQC_CONFIG_FILENAME"

	// ConfigDefaultPath is the default directory to search for config files.
	ConfigDefaultPath string = "."

	// ConfigDefaultFilename is the default configuration file name (without extension).
	ConfigDefaultFilename string = "dqc-config"
)

// Configuration key constants for use with [VConfig].
const (
	logLevel string = "log.level"

	// SuppressedRules is a comma-separated list of rule ids to suppress.
	// Suppressing an id also suppresses every sub-rule beneath it, so
	// "DQC.US.0015" silences DQC.US.0015 and all of its test cases.
	//
	// Set via environment: DQC_RULES_SUPPRESS=DQC.US.0001.75,DQC.US.0015
	SuppressedRules string = "rules.suppress"

	// DimensionalEquivalents enables the dimensional-equivalence rule
	// family, which assumes the full US-GAAP dimensional model.
	//
	// Default: false
	// Set via environment: DQC_RULES_DIMENSIONALEQUIVALENTS=true
	DimensionalEquivalents string = "rules.dimensionalequivalents"

	// EvalBudget is the wall-clock budget for one filing evaluation, as a
	// Go duration string. Rules that do not complete within the budget are
	// reported as inconclusive. Zero means no budget.
	//
	// Set via environment: DQC_EVAL_BUDGET=30s
	EvalBudget string = "eval.budget"

	// EvalWorkers is the number of rules evaluated concurrently. Results
	// are always reported in rule registration order regardless of this
	// setting.
	//
	// Default: 1
	// Set via environment: DQC_EVAL_WORKERS=4
	EvalWorkers string = "eval.workers"

	// Namespaces is a map of canonical taxonomy prefixes to namespace
	// URIs, overriding the pattern-based resolution against the DTS. Used
	// when a filing carries a taxonomy release the built-in patterns do
	// not recognize.
	//
	// Example config:
	//
	//	namespaces:
	//	  dei: http://xbrl.sec.gov/dei/2023-01-31
	Namespaces string = "namespaces"
)

var (
	once     sync.Once
	loadOnce sync.Once
	loadErr  error

	// VConfig is the global Viper configuration instance for the engine.
	//
	// Use the configuration key constants ([SuppressedRules], [EvalBudget],
	// etc.) to access specific settings:
	//
	//	budget := config.VConfig.GetDuration(config.EvalBudget)
	//
	// VConfig is initialized automatically when [Load] or [Init] is
	// called; configuration is handled automatically by [core.NewEngine].
	VConfig *viper.Viper
	logger  = logging.GetLogger("dqengine.config")
)

// Init initializes the configuration system without loading config files.
//
// This function is safe to call multiple times; subsequent calls are
// no-ops. Most applications don't need to call Init directly; it's called
// automatically by [Load], which is called by [core.NewEngine]. Call Init
// explicitly only to set Viper defaults before [Load] reads the
// configuration file.
func Init() {
	once.Do(func() {
		doInitialize()
	})
}

func getConfigPath() string {
	configPath, ok := os.LookupEnv(ConfigPathEnv)
	if ok {
		return configPath
	}

	return ConfigDefaultPath
}

func getConfigFileName() string {
	configName, ok := os.LookupEnv(ConfigFileNameEnv)
	if ok {
		return configName
	}

	return ConfigDefaultFilename
}

func doInitialize() {
	VConfig = viper.New()

	// set up config-file loading:  default is './dqc-config.yaml' but can be overridden with $(DQC_CONFIG_PATH)/$(DQC_CONFIG_FILENAME).yaml
	VConfig.AddConfigPath(getConfigPath())
	VConfig.SetConfigName(getConfigFileName())
	VConfig.SetConfigType("yaml")

	// set up envvar handling:  keys such as 'log.level' become 'DQC_LOG_LEVEL'
	VConfig.SetEnvPrefix(EnvVarPrefix)
	VConfig.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	VConfig.AutomaticEnv()

	// set up VConfig defaults
	VConfig.SetDefault(logLevel, ".:info")
	VConfig.SetDefault(DimensionalEquivalents, false)
	VConfig.SetDefault(EvalWorkers, 1)
}

// Load initializes configuration and loads settings from files and
// environment.
//
//  1. Calls [Init] if not already called
//  2. Reads the configuration file (if present; missing files are not an error)
//  3. Applies environment variable overrides
//  4. Updates log levels based on configuration
//
// This function is safe to call concurrently from multiple goroutines.
// Subsequent calls after the first successful load are no-ops that return
// nil. Load is called automatically by [core.NewEngine].
//
// Returns an error if log level configuration is invalid.
func Load() error {
	loadOnce.Do(func() {
		Init()

		// Early log level update from environment variable allows us to debug the config loading.
		earlyLoglevel := os.Getenv("DQC_LOG_LEVEL")
		if earlyLoglevel != "" {
			if err := logging.UpdateLogLevels(earlyLoglevel); err != nil {
				logger.SysErrorf("Failed updating early log level %s: %+v", earlyLoglevel, err)
				loadErr = err
				return
			}
		}

		logger.SysDebugf("Loading configuration from %s/%s.yaml", getConfigPath(), getConfigFileName())
		err := VConfig.ReadInConfig()
		if err != nil {
			// Only log if it's an actual error, not just a missing config file
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				logger.SysWarnf("error reading config; using defaults: %+v", err)
			}
			logger.SysDebugf("No config file found at %s/%s.yaml", getConfigPath(), getConfigFileName())
		}

		// Update log levels based on final configuration
		loglevel := VConfig.GetString(logLevel)
		if err := logging.UpdateLogLevels(loglevel); err != nil {
			logger.SysErrorf("Failed updating log level %s: %+v", loglevel, err)
			loadErr = err
			return
		}
	})

	return loadErr
}

// ResetConfig clears all configuration and reinitializes with defaults.
//
// WARNING: This function is intended for testing only. It resets the
// global configuration state, which can cause race conditions in
// concurrent code.
func ResetConfig() {
	VConfig = nil
	once = sync.Once{}     // reset the sync.Once to allow re-initialization
	loadOnce = sync.Once{} // reset the loadOnce to allow re-loading
	loadErr = nil          // reset any previous load error
	Init()
	// ignore any reset errors
	_ = Load()
}

// GetSuppressedRules returns the configured suppression list, split and
// trimmed. Returns nil when no suppression is configured.
func GetSuppressedRules() []string {
	raw := VConfig.GetString(SuppressedRules)
	if raw == "" {
		return nil
	}
	var out []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
