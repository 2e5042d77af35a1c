package config

import (
	"log"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	config *Config
	once   sync.Once
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`

	SecretKey    string `mapstructure:"SECRET_KEY"`
	BcryptCost   int    `mapstructure:"BCRYPT_COST"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
	ResetURL     string `mapstructure:"RESET_URL"`

	UploadsDir string `mapstructure:"UPLOADS_DIR"`

	PostgresDSN       string        `mapstructure:"POSTGRES_DSN"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DBLogMode         bool          `mapstructure:"DB_LOG_MODE"`
}

func GetConfig() *Config {
	once.Do(func() {
		viper.SetDefault("PORT", "5000")
		viper.SetDefault("ENVIRONMENT", "development")
		viper.SetDefault("BCRYPT_COST", 10)
		viper.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
		viper.SetDefault("SMTP_PORT", 587)
		viper.SetDefault("UPLOADS_DIR", "uploads")
		viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
		viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
		viper.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
		viper.SetDefault("DB_LOG_MODE", true)

		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				log.Fatalf("Fatal error config file: %s \n", err)
			} else {
				log.Println("[WARNING]: .env config file not found, relying on defaults and system ENV variables.")
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			log.Fatalf("Error unmarshalling config, %s", err)
		}

		if config.SecretKey == "" {
			log.Fatal("SECRET_KEY is required to sign session tokens")
		}

		lifetimeStr := viper.GetString("DB_CONN_MAX_LIFETIME")
		parsedLifetime, err := time.ParseDuration(lifetimeStr)
		if err != nil {
			log.Printf(
				"Warning: Invalid DB_CONN_MAX_LIFETIME format '%s', using default 1h. Error: %v\n",
				lifetimeStr,
				err,
			)
			parsedLifetime = time.Hour
		}
		config.DBConnMaxLifetime = parsedLifetime
	})

	return config
}
