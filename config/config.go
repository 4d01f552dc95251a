package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Api struct {
		Port     uint16 `envconfig:"API_PORT" default:"8080" required:"true"`
		Path     string `envconfig:"API_PATH" default:"/api/v1" required:"true"`
		Telegram TelegramConfig
		Token    TokenConfig
	}
	Db  DbConfig
	Log struct {
		Level int `envconfig:"LOG_LEVEL" default:"-4" required:"true"`
	}
}

type TelegramConfig struct {
	Token  string `envconfig:"API_TELEGRAM_TOKEN" required:"true"`
	WebApp struct {
		Url string `envconfig:"API_TELEGRAM_WEBAPP_URL" default:"https://shop.floriva.store"`
	}
	Auth struct {
		MaxAge     time.Duration `envconfig:"API_TELEGRAM_AUTH_MAX_AGE" default:"24h" required:"true"`
		SkewFuture time.Duration `envconfig:"API_TELEGRAM_AUTH_SKEW_FUTURE" default:"1m" required:"true"`
	}
}

type TokenConfig struct {
	SigningKey string        `envconfig:"API_TOKEN_SIGNING_KEY" required:"true"`
	TtlAccess  time.Duration `envconfig:"API_TOKEN_TTL_ACCESS" default:"1h" required:"true"`
	TtlRefresh time.Duration `envconfig:"API_TOKEN_TTL_REFRESH" default:"720h" required:"true"`
}

type DbConfig struct {
	Uri      string `envconfig:"DB_URI" default:"mongodb://localhost:27017/?retryWrites=true&w=majority" required:"true"`
	Name     string `envconfig:"DB_NAME" default:"shop" required:"true"`
	UserName string `envconfig:"DB_USERNAME" default:""`
	Password string `envconfig:"DB_PASSWORD" default:""`
	Table    struct {
		Users      string `envconfig:"DB_TABLE_USERS" default:"users" required:"true"`
		Products   string `envconfig:"DB_TABLE_PRODUCTS" default:"products" required:"true"`
		Categories string `envconfig:"DB_TABLE_CATEGORIES" default:"categories" required:"true"`
		Orders     string `envconfig:"DB_TABLE_ORDERS" default:"orders" required:"true"`
	}
	Tls struct {
		Enabled  bool `envconfig:"DB_TLS_ENABLED" default:"false" required:"true"`
		Insecure bool `envconfig:"DB_TLS_INSECURE" default:"false" required:"true"`
	}
}

func NewConfigFromEnv() (cfg Config, err error) {
	err = envconfig.Process("", &cfg)
	return
}
