package main

import (
	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/lrucache/pkg/logger"
)

// Config is read from the environment; flags override it.
type Config struct {
	Log      logger.Config `envPrefix:"LRUTRACE_"`
	Parallel int           `env:"LRUTRACE_PARALLEL" envDefault:"4"`
}

func loadConfig() (Config, error) {
	return env.ParseAs[Config]()
}
