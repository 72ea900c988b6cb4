package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds runtime overrides read from the process environment.
type Env struct {
	Seed      int64  `env:"NADAGOTCHI_SEED"`
	DNASalt   string `env:"NADAGOTCHI_DNA_SALT" envDefault:"nadagotchi"`
	DBPath    string `env:"NADAGOTCHI_DB_PATH"`
	OutputDir string `env:"NADAGOTCHI_OUTPUT_DIR"`
	LogLevel  string `env:"NADAGOTCHI_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv parses environment variables into the provided struct.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
