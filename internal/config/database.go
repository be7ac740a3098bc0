package config

import (
	"strings"
	"time"
)

type DatabaseConfig struct {
	URI            string
	Database       string
	Password       string
	MaxPoolSize    int
	MinPoolSize    int
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

func loadDatabaseConfig() *DatabaseConfig {
	cfg := &DatabaseConfig{
		URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017/gotours"),
		Database:       getEnv("MONGODB_DATABASE", "gotours"),
		Password:       getEnv("MONGODB_PASSWORD", ""),
		MaxPoolSize:    getEnvAsInt("MONGODB_MAX_POOL_SIZE", 100),
		MinPoolSize:    getEnvAsInt("MONGODB_MIN_POOL_SIZE", 5),
		ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		SocketTimeout:  getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
	}

	// Hosted connection strings carry a <PASSWORD> placeholder so the real
	// credential can live in its own variable.
	cfg.URI = strings.Replace(cfg.URI, "<PASSWORD>", cfg.Password, 1)

	return cfg
}
