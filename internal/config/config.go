package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/kiryu-dev/battleship/internal/engine"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidTimeout = errors.New("timeout must be positive")
	ErrEmptyAddr      = errors.New("address must not be empty")
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type ListenConfig struct {
	Name string `yaml:"name" env:"SERVER_NAME"`
	Addr string `yaml:"addr" env:"SERVER_PORT" env-default:":8080"`
}

type GameConfig struct {
	Quota            int           `yaml:"quota" env:"GAME_QUOTA" env-default:"2"`
	ShipLength       int           `yaml:"ship_length" env:"GAME_SHIP_LENGTH" env-default:"3"`
	TurnTimeout      time.Duration `yaml:"turn_timeout" env:"GAME_TURN_TIMEOUT" env-default:"15s"`
	ReconnectTimeout time.Duration `yaml:"reconnect_timeout" env:"GAME_RECONNECT_TIMEOUT" env-default:"1m"`
}

func (c GameConfig) Rules() engine.Rules {
	return engine.Rules{
		Quota:      c.Quota,
		ShipLength: c.ShipLength,
	}
}

type RedisConfig struct {
	Addr       string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
}

type SyncConfig struct {
	Period time.Duration `yaml:"period" env:"SYNC_PERIOD" env-default:"5s"`
}

type config struct {
	Server  ListenConfig   `yaml:"server"`
	Game    GameConfig     `yaml:"game"`
	Redis   RedisConfig    `yaml:"redis"`
	Sync    SyncConfig     `yaml:"sync"`
	Servers []ServerConfig `yaml:"outer_servers"`
}

// New reads the YAML file at cfgPath and lets the environment override it.
// Fields left empty by both fall back to their env-default values.
func New(cfgPath string) (config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return config{}, errors.WithMessage(err, "open config file")
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := config{}
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return config{}, errors.WithMessage(err, "decode yaml")
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return config{}, errors.WithMessage(err, "read env")
	}
	if err := cfg.validate(); err != nil {
		return config{}, errors.WithMessage(err, "validate config")
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.Server.Addr == "" {
		return errors.WithMessage(ErrEmptyAddr, "server.addr")
	}
	if c.Redis.Addr == "" {
		return errors.WithMessage(ErrEmptyAddr, "redis.addr")
	}
	if err := c.Game.Rules().Validate(); err != nil {
		return errors.WithMessage(err, "game rules")
	}
	timeouts := map[string]time.Duration{
		"game.turn_timeout":      c.Game.TurnTimeout,
		"game.reconnect_timeout": c.Game.ReconnectTimeout,
		"redis.session_ttl":      c.Redis.SessionTTL,
		"sync.period":            c.Sync.Period,
	}
	for name, v := range timeouts {
		if v <= 0 {
			return errors.WithMessagef(ErrInvalidTimeout, "%s = %s", name, v)
		}
	}
	return nil
}
