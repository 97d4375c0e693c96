package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/pebbles-backend/internal/entity"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat  string `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	RandomSeed int64  `yaml:"random-seed" env:"RANDOM_SEED" env-default:"0"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Game - defaults for games created without explicit parameters.
type Game struct {
	Difficulty   string        `yaml:"difficulty" env:"GAME_DIFFICULTY" env-default:"Easy"`
	PebblesTotal int           `yaml:"pebbles-total" env:"GAME_PEBBLES_TOTAL" env-default:"15"`
	MaxPerTurn   int           `yaml:"max-per-turn" env:"GAME_MAX_PER_TURN" env-default:"3"`
	SessionTTL   time.Duration `yaml:"session-ttl" env:"GAME_SESSION_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Game.Defaults().Validate(); err != nil {
		return nil, fmt.Errorf("invalid game defaults: %w", err)
	}

	return config, nil
}

// GetRedisAddr - host:port, or an empty string when no host is configured.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Game) Defaults() entity.GameConfig {
	return entity.GameConfig{
		Difficulty:   entity.Difficulty(that.Difficulty),
		PebblesTotal: that.PebblesTotal,
		MaxPerTurn:   that.MaxPerTurn,
	}
}
