package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisWizardDB int    `mapstructure:"REDIS_WIZARD_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Cloudinary credentials for media storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Google service account for speech-to-text (voice intro transcription).
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// Media pipeline tuning.
	PhotoMaxDimension  int `mapstructure:"PHOTO_MAX_DIMENSION"`
	PhotoJPEGQuality   int `mapstructure:"PHOTO_JPEG_QUALITY"`
	URLResolveAttempts int `mapstructure:"URL_RESOLVE_ATTEMPTS"`
	URLResolveDelaySec int `mapstructure:"URL_RESOLVE_DELAY_SEC"`
	URLSettleDelaySec  int `mapstructure:"URL_SETTLE_DELAY_SEC"`

	// Profile setup wizard.
	WizardDraftTTLMin int `mapstructure:"WIZARD_DRAFT_TTL_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_WIZARD_DB", 2)
	viper.SetDefault("REDIS_TASK_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	viper.SetDefault("PHOTO_MAX_DIMENSION", 800)
	// One quality constant for every photo upload path.
	viper.SetDefault("PHOTO_JPEG_QUALITY", 50)
	viper.SetDefault("URL_RESOLVE_ATTEMPTS", 3)
	viper.SetDefault("URL_RESOLVE_DELAY_SEC", 1)
	viper.SetDefault("URL_SETTLE_DELAY_SEC", 2)
	viper.SetDefault("WIZARD_DRAFT_TTL_MIN", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
