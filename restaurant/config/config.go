package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dinehall/booking-service/pkg/logger"
	"github.com/dinehall/booking-service/pkg/postgres"
	"github.com/dinehall/booking-service/pkg/server"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RESTAURANT_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"RESTAURANT_HTTP_PORT" default:"8060"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration
}

type ReservationHTTPServer struct {
	Host    string        `envconfig:"RESERVATION_HTTP_HOST" default:"localhost"`
	Port    string        `envconfig:"RESERVATION_HTTP_PORT" default:"8070"`
	Timeout time.Duration `envconfig:"RESERVATION_HTTP_TIMEOUT" default:"5s"`
}

// Availability controls which reservation statuses block a table for a slot.
// An empty OccupyingStatuses means every reservation row counts, whatever its
// status (the legacy behavior).
type Availability struct {
	OccupyingStatuses []string `envconfig:"AVAILABILITY_OCCUPYING_STATUSES" default:"PENDING,CONFIRMED,CHECKED_IN"`
}

type Config struct {
	Server                HTTPServer `yaml:"server"`
	Database              postgres.Config
	ReservationHTTPServer ReservationHTTPServer
	Availability          Availability
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
