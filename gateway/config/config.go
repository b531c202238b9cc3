package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dinehall/booking-service/pkg/kafka"
	"github.com/dinehall/booking-service/pkg/logger"
	"github.com/dinehall/booking-service/pkg/server"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"GATEWAY_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"GATEWAY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration
}

type RestaurantHTTPServer struct {
	Host    string        `envconfig:"RESTAURANT_HTTP_HOST" default:"localhost"`
	Port    string        `envconfig:"RESTAURANT_HTTP_PORT" default:"8060"`
	Timeout time.Duration `envconfig:"RESTAURANT_HTTP_TIMEOUT" default:"5s"`
}

type ReservationHTTPServer struct {
	Host    string        `envconfig:"RESERVATION_HTTP_HOST" default:"localhost"`
	Port    string        `envconfig:"RESERVATION_HTTP_PORT" default:"8070"`
	Timeout time.Duration `envconfig:"RESERVATION_HTTP_TIMEOUT" default:"5s"`
}

type Auth struct {
	User     string        `envconfig:"GATEWAY_AUTH_USER" default:"user"`
	Password string        `envconfig:"GATEWAY_AUTH_PASSWORD" default:"password"`
	TokenTTL time.Duration `envconfig:"GATEWAY_TOKEN_TTL" default:"24h"`
}

type Config struct {
	Server                HTTPServer `yaml:"server"`
	Kafka                 kafka.Config
	Auth                  Auth
	RestaurantHTTPServer  RestaurantHTTPServer
	ReservationHTTPServer ReservationHTTPServer
	Log                   logger.Log `yaml:"log"`
}

func (c *Config) ServerConfig() server.Config {
	return server.Config{
		Host:         c.Server.Host,
		Port:         c.Server.Port,
		ReadTimeout:  c.Server.ReadTimeout,
		WriteTimeout: c.Server.WriteTimeout,
	}
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = timeout
	}
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
