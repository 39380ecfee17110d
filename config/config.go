package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Artifacts ArtifactsConfig
	CORS      CORSConfig
	Redis     RedisConfig
	Database  DatabaseConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	Mode            string        `envconfig:"GIN_MODE" default:"debug"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

type ArtifactsConfig struct {
	Dir            string `envconfig:"ARTIFACTS_DIR" default:"data"`
	ModelFile      string `envconfig:"MODEL_FILE" default:"housing_model.json"`
	ScalerFile     string `envconfig:"SCALER_FILE" default:"scaler.json"`
	FeaturesFile   string `envconfig:"FEATURES_FILE" default:"model_features.json"`
	ConfidenceFile string `envconfig:"CONFIDENCE_FILE" default:"confidence_lookup.json"`
}

type CORSConfig struct {
	AllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type RedisConfig struct {
	Enabled         bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Host            string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port            int           `envconfig:"REDIS_PORT" default:"6379"`
	Password        string        `envconfig:"REDIS_PASSWORD"`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	ConnectAttempts int           `envconfig:"REDIS_CONNECT_ATTEMPTS" default:"10"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"10m"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DatabaseConfig struct {
	Enabled  bool   `envconfig:"HISTORY_ENABLED" default:"false"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"housing"`
	Password string `envconfig:"DB_PASSWORD" default:"housing_dev_password"`
	Name     string `envconfig:"DB_NAME" default:"housing"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// LoadConfig reads the environment, after merging in a .env file from the
// working directory when one exists. Variables already set take precedence.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return &cfg, nil
}
