// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pressureq

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

// Config holds the connection and queue-naming configuration this
// package needs. Nothing here is part of the protocol itself — it only
// gets a client to the point of having a *redis.Client and a key prefix.
//
// Tags:
//
//	env: Environment variable name
//	envDefault: Default value if not set
type Config struct {
	RedisAddr     string        `env:"PRESSUREQ_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string        `env:"PRESSUREQ_REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"PRESSUREQ_REDIS_DB" envDefault:"0"`
	DialTimeout   time.Duration `env:"PRESSUREQ_DIAL_TIMEOUT" envDefault:"1500ms"`

	// Prefix namespaces every queue's keys. The reference prefix used by
	// the original C client and its front-ends is "__pressure__".
	Prefix string `env:"PRESSUREQ_PREFIX" envDefault:"__pressure__"`
}

// LoadConfig reads configuration from an optional .env file and then
// from environment variables. Priority: env vars > .env file > defaults,
// matching the precedence used by this project's teacher front-ends.
//
// It is valid for no .env file to exist; that is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("pressureq: parse config: %w", err)
	}
	return cfg, nil
}

// NewRedisClient builds a *redis.Client from Config. Callers that
// already have a client (e.g. one shared across multiple queues) can
// skip this and call Open directly with their own *redis.Client.
func NewRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: cfg.DialTimeout,
	})
}
