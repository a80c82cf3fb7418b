package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/kazz187/agileboard/pkg/clog"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type StorageEnv struct {
	DataDir  string `envconfig:"DATA_DIR" default:"."`
	DataFile string `envconfig:"DATA_FILE" default:"agile_data.json"`
}

type WatchEnv struct {
	Debounce time.Duration `envconfig:"WATCH_DEBOUNCE" default:"100ms"`
}

type Env struct {
	BaseEnv
	StorageEnv
	WatchEnv
}

const namespace = "AGILEBOARD"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelInfo
	}
	return clog.ParseLevel(e.LogLevel)
}
