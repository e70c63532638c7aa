package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App
	Postgres
	HTTPServer
	Auth
}

type App struct {
	Env                  string   `env:"APP_ENV" env-default:"development"`
	Storage              string   `env:"STORAGE" env-default:"postgres"`
	AutoApproveGuestbook bool     `env:"AUTO_APPROVE_GUESTBOOK" env-default:"false"`
	AllowOrigins         []string `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

// Production reports whether the service runs with production cookie settings.
func (a App) Production() bool {
	return a.Env == "production"
}

type Postgres struct {
	User       string        `env:"POSTGRES_USER" env-default:"postgres"`
	Pass       string        `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	Host       string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port       string        `env:"POSTGRES_PORT" env-default:"5432"`
	DB         string        `env:"POSTGRES_DB" env-default:"community"`
	SSLMode    string        `env:"POSTGRES_SSLMODE" env-default:"disable"`
	Timeout    time.Duration `env:"POSTGRES_TIMEOUT" env-default:"5s"`
	Migrations string        `env:"POSTGRES_MIGRATIONS" env-default:"./migrations"`
}

type HTTPServer struct {
	BindAddress     string        `env:"BIND_ADDRESS" env-default:"localhost"`
	BindPort        string        `env:"BIND_PORT" env-default:"8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"5s"`
}

type Auth struct {
	JWTSecret  string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" env-default:"168h"`
	CookieName string        `env:"SESSION_COOKIE" env-default:"token"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"10"`
}

// New loads the optional env file on top of the process environment and
// reads the configuration from it.
func New(env string) (*Config, error) {
	conf := &Config{}

	if _, err := os.Stat(env); err == nil {
		if err := godotenv.Overload(env); err != nil {
			return nil, fmt.Errorf("godotenv.Overload: %v", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("os.Stat: %v", err)
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.Readenv: %v", err)
	}

	return conf, nil
}
