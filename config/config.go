package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Port   string `env:"PORT" envDefault:"3000"`
	Mongo  Mongo  `envPrefix:"MONGO_"`
	JWT    JWT    `envPrefix:"JWT_"`
	Upload Upload `envPrefix:"UPLOAD_"`
}

// Mongo contains database connection parameters.
type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://127.0.0.1:27017"`
	Database string `env:"DB" envDefault:"miniproject"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret string `env:"SECRET" envDefault:"devsecret"`
}

// Upload contains avatar upload parameters.
type Upload struct {
	Dir string `env:"DIR" envDefault:"public/images/upload"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
