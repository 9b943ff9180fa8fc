package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

type Config struct {
	LogLevel  string  `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	Role      string  `yaml:"role" env:"TTT_ROLE" env-required:"true" env-description:"initiator or responder"`
	Name      string  `yaml:"name" env:"TTT_NAME" env-description:"own display name, defaults to the role label"`
	Transport string  `yaml:"transport" env:"TTT_TRANSPORT" env-default:"tcp" env-description:"tcp or websocket"`
	Peer      Address `yaml:"peer" env-prefix:"TTT_PEER_"`
	Listen    Address `yaml:"listen" env-prefix:"TTT_LISTEN_"`
	Dial      Dial    `yaml:"dial" env-prefix:"TTT_DIAL_"`
	Redis     Redis   `yaml:"redis" env-prefix:"TTT_REDIS_"`
}

type Address struct {
	Host string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port int    `yaml:"port" env:"PORT" env-default:"3000"`
}

type Dial struct {
	MaxRetries      uint64        `yaml:"max-retries" env:"MAX_RETRIES" env-default:"10"`
	InitialInterval time.Duration `yaml:"initial-interval" env:"INITIAL_INTERVAL" env-default:"500ms"`
	MaxInterval     time.Duration `yaml:"max-interval" env:"MAX_INTERVAL" env-default:"5s"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"CHANNEL" env-default:"tictactoe:rounds"`
}

// MustLoad - reads path and applies environment overrides. A missing file
// means environment only.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("could not read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	return config, nil
}

// Usage - runs before first, then writes the environment variables the config understands.
func Usage(out io.Writer, header string, before func()) func() {
	return cleanenv.FUsage(out, &Config{}, &header, before)
}

func (that *Address) Addr() string {
	return net.JoinHostPort(that.Host, strconv.Itoa(that.Port))
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
