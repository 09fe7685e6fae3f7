// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек сервиса.
type Config struct {
	Env                     string        `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string        `yaml:"migrations_path" env-default:"./migrations"`
	RabbitURL               string        `yaml:"rabbit_url" env:"RABBIT_URL"` // пусто — публикация событий отключена
	DemoPause               time.Duration `yaml:"demo_pause" env-default:"2s"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	Generation              `yaml:"generation"`
	SMSProvider             `yaml:"sms_provider"`
	EmailProvider           `yaml:"email_provider"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"5s"`
}

// Generation структура для настройки генерации текста (Gemini).
type Generation struct {
	GenAPIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	GenModel   string        `yaml:"model" env-default:"gemini-2.5-flash"`
	GenTimeout time.Duration `yaml:"timeout" env-default:"20s"`
}

// SMSProvider структура для настройки SMS-провайдера (Twilio-совместимый API).
// Пустые учётные данные не ошибка: отправка деградирует до статуса "не отправлено".
type SMSProvider struct {
	SMSAccountSID string        `yaml:"account_sid" env:"SMS_ACCOUNT_SID"`
	SMSAuthToken  string        `yaml:"auth_token" env:"SMS_AUTH_TOKEN"`
	SMSFromNumber string        `yaml:"from_number" env:"SMS_FROM_NUMBER"`
	SMSSimulate   bool          `yaml:"simulate" env:"SMS_SIMULATE" env-default:"false"`
	SMSTimeout    time.Duration `yaml:"timeout" env-default:"10s"`
}

// EmailProvider структура для настройки email-провайдера (Resend-совместимый API).
type EmailProvider struct {
	EmailAPIKey      string        `yaml:"api_key" env:"EMAIL_API_KEY"`
	EmailFromAddress string        `yaml:"from_address" env:"EMAIL_FROM_ADDRESS" env-default:"goalcontract@bizzytext.com"`
	EmailTimeout     time.Duration `yaml:"timeout" env-default:"10s"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
// Перед чтением подхватывает .env, если он есть.
func MustLoad() *Config {
	_ = godotenv.Load()

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
