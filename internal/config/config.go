package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Console holds environment-based settings for the admin console.
type Console struct {
	ServerAddress string
	GatewayURL    string
	JWTSecret     string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	// MQTTBrokerURL is optional; when empty no kiosk notifications are sent.
	MQTTBrokerURL string
}

// Gateway holds environment-based settings for the local dev gateway.
type Gateway struct {
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string

	UploadDir string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

// LoadConsole reads console configuration from the environment,
// loading a .env file first if one is present.
func LoadConsole() (*Console, error) {
	_ = godotenv.Load()

	cfg := &Console{
		ServerAddress: os.Getenv("SERVER_ADDRESS"),
		GatewayURL:    os.Getenv("GATEWAY_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
	}
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("GATEWAY_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = ":8080"
	}
	return cfg, nil
}

// LoadGateway reads dev gateway configuration from the environment.
func LoadGateway() (*Gateway, error) {
	_ = godotenv.Load()

	cfg := &Gateway{
		ServerAddress:  os.Getenv("SERVER_ADDRESS"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		UploadDir:      os.Getenv("UPLOAD_DIR"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = ":8081"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "./migrations"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	return cfg, nil
}
