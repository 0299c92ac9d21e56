package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration values. Every field has a default,
// so the service starts without any environment at all.
type Config struct {
	AppPort string

	PostgresServer   string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	DatabaseDSN      string // overrides the assembled DSN when set
	DBEchoLog        bool

	MongoURI    string
	MongoDBName string

	CORSOrigins []string

	RabbitMQURL string // empty disables event publication

	DataDir string
}

// Load reads configuration from environment variables via Viper, applying
// defaults for anything unset.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8000")
	viper.SetDefault("POSTGRES_SERVER", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "soxutil")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("DB_ECHO_LOG", true)
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DB_NAME", "soxutil")
	viper.SetDefault("BACKEND_CORS_ORIGINS", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("DATA_DIR", "data")
	viper.AutomaticEnv()

	cfg := &Config{
		AppPort:          viper.GetString("APP_PORT"),
		PostgresServer:   viper.GetString("POSTGRES_SERVER"),
		PostgresPort:     viper.GetString("POSTGRES_PORT"),
		PostgresUser:     viper.GetString("POSTGRES_USER"),
		PostgresPassword: viper.GetString("POSTGRES_PASSWORD"),
		PostgresDB:       viper.GetString("POSTGRES_DB"),
		DatabaseDSN:      viper.GetString("DATABASE_DSN"),
		DBEchoLog:        viper.GetBool("DB_ECHO_LOG"),
		MongoURI:         viper.GetString("MONGODB_URI"),
		MongoDBName:      viper.GetString("MONGODB_DB_NAME"),
		CORSOrigins:      parseOrigins(viper.GetString("BACKEND_CORS_ORIGINS")),
		RabbitMQURL:      viper.GetString("RABBITMQ_URL"),
		DataDir:          viper.GetString("DATA_DIR"),
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.PostgresServer, cfg.PostgresPort, cfg.PostgresUser,
			cfg.PostgresPassword, cfg.PostgresDB,
		)
	}

	return cfg
}

// parseOrigins accepts either a comma-separated list of origins or a
// bracketed list literal like `["http://a", "http://b"]`.
func parseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		raw = raw[1 : len(raw)-1]
	}
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		origin := strings.Trim(strings.TrimSpace(part), `"'`)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
