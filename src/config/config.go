package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	NavSync         NavSyncConfig        `mapstructure:"navSync"`
	Auth            AuthConfig           `mapstructure:"auth"`
}

type ServiceConfig struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"logLevel"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	MFAPI MFAPIConfig `mapstructure:"mfapi"`
}

type MFAPIConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

// NavSyncConfig drives the scheduled NAV reconciliation job.
type NavSyncConfig struct {
	CronSpec    string        `mapstructure:"cronSpec"`
	MaxAttempts int           `mapstructure:"maxAttempts"`
	BaseDelay   time.Duration `mapstructure:"baseDelay"`
	Concurrency int           `mapstructure:"concurrency"`
}

type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwtSecret"`
	TokenExpiry time.Duration `mapstructure:"tokenExpiry"`
	// When SecretName is set the JWT secret is fetched from AWS Secrets
	// Manager instead of being read from the config file.
	SecretName string `mapstructure:"secretName"`
	AWSRegion  string `mapstructure:"awsRegion"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("FUNDTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("service.port", "8000")
	viper.SetDefault("service.logLevel", "info")
	viper.SetDefault("externalClients.mfapi.baseUrl", "https://api.mfapi.in/mf")
	viper.SetDefault("navSync.cronSpec", "0 0 * * *")
	viper.SetDefault("navSync.maxAttempts", 5)
	viper.SetDefault("navSync.baseDelay", 500*time.Millisecond)
	viper.SetDefault("navSync.concurrency", 4)
	viper.SetDefault("auth.tokenExpiry", 24*time.Hour)
}
