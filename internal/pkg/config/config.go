package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	GrowattCfg       *GrowattConfig
	MqttCfg          *MqttConfig
	ServerCfg        *ServerConfig
	DatabaseURL      string
	MigrationsFolder string
	PollInterval     time.Duration
	LogLevel         string
}

// GrowattConfig is everything the portal client needs. Parse it from the
// environment with FromEnv or fill it from CLI flags.
type GrowattConfig struct {
	Username               string `env:"GROWATT_USERNAME"`
	Password               string `env:"GROWATT_PASSWORD"`
	BaseURL                string `env:"GROWATT_BASE_URL" envDefault:"https://server.growatt.com"`
	SessionDurationMinutes int    `env:"GROWATT_SESSION_DURATION" envDefault:"30"`
}

func (c *GrowattConfig) SessionDuration() time.Duration {
	return time.Duration(c.SessionDurationMinutes) * time.Minute
}

type MqttConfig struct {
	Host     string `env:"MQTT_HOST"`
	Username string `env:"MQTT_USER"`
	Password string `env:"MQTT_PASS"`
}

type ServerConfig struct {
	Addr string `env:"SERVER_ADDR" envDefault:"0.0.0.0:8000"`
	// bcrypt hash protecting the read API; empty disables auth.
	APIPasswordHash string `env:"API_PASSWORD_HASH"`
}

// FromEnv parses a fresh GrowattConfig from the environment. Each call
// returns an independent struct; repeated loads do not leak into each other.
func FromEnv() (*GrowattConfig, error) {
	cfg := &GrowattConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
