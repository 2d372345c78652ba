/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared helpers for condprob commands: configuration loading, logger
construction, seeded random sources and variable numbering.
*/

package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kleascm/condprob/pkg/logging"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("CONDPROB")
	viper.AutomaticEnv()
	return nil
}

// SetupLogging builds the logger described by the loaded configuration
func SetupLogging() (*logging.Logger, error) {
	format := logging.LogFormat(viper.GetString("log_format"))
	if viper.GetBool("json_logs") {
		format = logging.LogFormatJSON
	}
	if format == "" {
		format = logging.LogFormatCustom
	}
	level := logging.LogLevel(viper.GetString("log_level"))
	if level == "" {
		level = logging.LogLevelInfo
	}

	maxFiles := viper.GetInt("log_max_files")
	if maxFiles <= 0 {
		maxFiles = 10
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    format,
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  maxFiles,
		MaxSize:   10 * 1024 * 1024,
		Timestamp: true,
		Colors:    format != logging.LogFormatJSON,
		Compress:  viper.GetBool("log_compress"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// prepare loads configuration and logging for a command
func prepare() (*logging.Logger, error) {
	if err := LoadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return SetupLogging()
}

// newRand returns a source seeded from the seed key, or the clock when it is zero
func newRand() (*rand.Rand, int64) {
	seed := viper.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// variableBase is the number printed for variable position 0
func variableBase() int {
	if viper.GetBool("zero_based") {
		return 0
	}
	return 1
}

func printPrecision() int {
	p := viper.GetInt("precision")
	if p <= 0 {
		return 6
	}
	return p
}
