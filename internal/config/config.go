// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	MongoConnection `yaml:"mongo_connection"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	SMTP            `yaml:"smtp"`
	HTTPServer      `yaml:"http_server"`
	JWTToken        `yaml:"jwttoken"`
	Payments        `yaml:"payments"`
	Documents       `yaml:"documents"`
}

// MongoConnection структура для настройки подключения к MongoDB
type MongoConnection struct {
	URI          string        `yaml:"uri" env:"MONGO_URI"`
	Database     string        `yaml:"database" env:"MONGO_DB" env-default:"marketplace"`
	TimeoutMongo time.Duration `yaml:"timeout" env-default:"10s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDR"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ структура для настройки подключения к брокеру уведомлений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// SMTP структура для настройки исходящей почты
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"pass" env:"SMTP_PASS"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Payments структура для настройки имитации платёжного шлюза
type Payments struct {
	SuccessRate      float64       `yaml:"success_rate" env-default:"0.9"`       // Вероятность успешного платежа
	ListingFee       float64       `yaml:"listing_fee" env-default:"99"`         // Плата за размещение листинга
	SubscriptionFee  float64       `yaml:"subscription_fee" env-default:"49"`    // Плата за подписку покупателя
	SubscriptionTerm time.Duration `yaml:"subscription_term" env-default:"720h"` // Срок подписки за один платёж
}

// Documents структура для ограничений на прикрепляемые документы
type Documents struct {
	MaxPerListing int    `yaml:"max_per_listing" env-default:"10"`
	MaxSizeBytes  int64  `yaml:"max_size_bytes" env-default:"10485760"`
	AllowedType   string `yaml:"allowed_type" env-default:"application/pdf"`
}

// MustLoad функция для загрузки конфига, возвращает конфиг,
// прочитанный из файла по пути CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
