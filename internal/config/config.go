package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	TLS        TLS    `yaml:"tls"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
	Socket     Socket `yaml:"socket"`
}

type TLS struct {
	CertFile string `yaml:"cert-file" env:"TLS_CERT_FILE"`
	KeyFile  string `yaml:"key-file" env:"TLS_KEY_FILE"`
}

// Redis holds the archive connection; an empty host disables the archive.
type Redis struct {
	Host string        `yaml:"host" env:"REDIS_HOST"`
	Port string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL  time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

type Game struct {
	TimePerPlayer      time.Duration `yaml:"time-per-player" env:"GAME_TIME_PER_PLAYER" env-default:"5s"`
	IncrementPerPlayer time.Duration `yaml:"increment-per-player" env:"GAME_INCREMENT_PER_PLAYER" env-default:"1s"`
	TickInterval       time.Duration `yaml:"tick-interval" env:"GAME_TICK_INTERVAL" env-default:"100ms"`
	MatchRetention     time.Duration `yaml:"match-retention" env:"GAME_MATCH_RETENTION" env-default:"30m"`
	SweepInterval      time.Duration `yaml:"sweep-interval" env:"GAME_SWEEP_INTERVAL" env-default:"1m"`
}

type Socket struct {
	RegisterTimeout time.Duration `yaml:"register-timeout" env:"SOCKET_REGISTER_TIMEOUT" env-default:"5s"`
	SendBuffer      int           `yaml:"send-buffer" env:"SOCKET_SEND_BUFFER" env-default:"64"`
}

// MustLoad - load configuration from config.yml, a .env file and the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

// Load reads path when it exists and falls back to the environment otherwise.
func Load(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	return config, nil
}

// SlogLevel maps log-level to a slog level; unknown values fall back to info.
func (that *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(that.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func (that *Redis) Enabled() bool {
	return that.Host != ""
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *TLS) Enabled() bool {
	return that.CertFile != "" && that.KeyFile != ""
}
