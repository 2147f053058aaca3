package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Directory   DirectoryConfig   `mapstructure:"directory"`
	Bureau      BureauConfig      `mapstructure:"bureau"`
	Session     SessionConfig     `mapstructure:"session"`
	Negotiation NegotiationConfig `mapstructure:"negotiation"`
	Loan        LoanConfig        `mapstructure:"loan"`
	Letter      LetterConfig      `mapstructure:"letter"`
	Events      EventsConfig      `mapstructure:"events"`
}

type ServerConfig struct {
	Port         int             `mapstructure:"port"`
	ReadTimeout  time.Duration   `mapstructure:"readTimeout"`
	WriteTimeout time.Duration   `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration   `mapstructure:"idleTimeout"`
	RateLimit    RateLimitConfig `mapstructure:"rateLimit"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type MetricsConfig struct {
	Path string `mapstructure:"path"`
}

type DirectoryConfig struct {
	DataFile string `mapstructure:"dataFile"`
}

type BureauConfig struct {
	BaseURL    string        `mapstructure:"baseUrl"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"maxRetries"`
}

type SessionConfig struct {
	Store         string        `mapstructure:"store"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepSchedule string        `mapstructure:"sweepSchedule"`
	RedisAddr     string        `mapstructure:"redisAddr"`
}

type NegotiationConfig struct {
	SuggestionPolicy string `mapstructure:"suggestionPolicy"`
	MinTenureMonths  int    `mapstructure:"minTenureMonths"`
	MaxTenureMonths  int    `mapstructure:"maxTenureMonths"`
}

type LoanConfig struct {
	AnnualInterestRate string `mapstructure:"annualInterestRate"`
}

type LetterConfig struct {
	OutputDir string `mapstructure:"outputDir"`
}

type EventsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	ExchangeName string `mapstructure:"exchangeName"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 15*time.Second)
	viper.SetDefault("server.writeTimeout", 15*time.Second)
	viper.SetDefault("server.idleTimeout", 60*time.Second)
	viper.SetDefault("server.rateLimit.enabled", true)
	viper.SetDefault("server.rateLimit.rps", 10)
	viper.SetDefault("server.rateLimit.burst", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("directory.dataFile", "data/customers.json")
	viper.SetDefault("bureau.baseUrl", "http://127.0.0.1:5001")
	viper.SetDefault("bureau.timeout", 5*time.Second)
	viper.SetDefault("bureau.maxRetries", 2)
	viper.SetDefault("session.store", "memory")
	viper.SetDefault("session.ttl", 30*time.Minute)
	viper.SetDefault("session.sweepSchedule", "@every 5m")
	viper.SetDefault("session.redisAddr", "localhost:6379")
	viper.SetDefault("negotiation.suggestionPolicy", "autoAccept")
	viper.SetDefault("negotiation.minTenureMonths", 6)
	viper.SetDefault("negotiation.maxTenureMonths", 84)
	viper.SetDefault("loan.annualInterestRate", "10.99")
	viper.SetDefault("letter.outputDir", "generated_letters")
	viper.SetDefault("events.enabled", false)
	viper.SetDefault("events.host", "localhost")
	viper.SetDefault("events.port", 5672)
	viper.SetDefault("events.username", "guest")
	viper.SetDefault("events.password", "guest")
	viper.SetDefault("events.exchangeName", "loan-origination")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using defaults and environment variables.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
