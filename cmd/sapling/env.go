package main

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envPrefix = "sapling"

// envConfig holds the settings taken from SAPLING_* environment variables
type envConfig struct {
	RedisAddr       string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string `envconfig:"REDIS_PASSWORD"`
	RedisDB         int    `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix     string `envconfig:"REDIS_PREFIX" default:"sapling"`
	MongoCollection string `envconfig:"MONGO_COLLECTION" default:"points"`
	SQLTable        string `envconfig:"SQL_TABLE" default:"points"`
	LogFormat       string `envconfig:"LOG_FORMAT" default:"text"`
	Workers         int    `envconfig:"WORKERS" default:"1"`
}

func readEnvConfig() (*envConfig, error) {
	ec := &envConfig{}
	err := envconfig.Process(envPrefix, ec)
	if err != nil {
		return nil, errors.Wrap(err, "reading environment configuration")
	}
	return ec, nil
}
