package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	MongoURI      string `envconfig:"MONGODB_URI"      required:"true"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"productdb"`
	HTTPPort      string `envconfig:"HTTP_PORT"        default:":3000"`
	LogLevel      string `envconfig:"LOG_LEVEL"        default:"info"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err := envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, Database=%s, LogLevel=%s",
			config.HTTPPort, config.MongoDatabase, config.LogLevel)
	})
	return &config
}
