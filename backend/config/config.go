package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const envPrefix = "POSTBOARD"

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string
	DSN    string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type JWT struct {
	Secret    string
	Algorithm string
	ExpMin    int
}

type Auth struct {
	Pepper     string
	BcryptCost int
}

type Log struct {
	Level  string
	Format string
}

// Config is built once at startup and never mutated afterwards.
type Config struct {
	HTTP HTTP
	DB   DB
	JWT  JWT
	Auth Auth
	Log  Log
}

// Load reads the yaml file at path (optional when empty), then applies
// POSTBOARD_* environment overrides. A .env file in the working directory,
// if present, is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("backend.http.host", "127.0.0.1")
	v.SetDefault("backend.http.port", 8000)
	v.SetDefault("backend.db.driver", "sqlite")
	v.SetDefault("backend.db.dsn", "")
	v.SetDefault("backend.db.host", "127.0.0.1")
	v.SetDefault("backend.db.port", 0)
	v.SetDefault("backend.db.user", "postboard")
	v.SetDefault("backend.db.pass", "")
	v.SetDefault("backend.db.name", "postboard")
	v.SetDefault("backend.jwt.secret", "")
	v.SetDefault("backend.jwt.algorithm", "HS256")
	v.SetDefault("backend.jwt.exp_min", 30)
	v.SetDefault("backend.auth.pepper", "")
	v.SetDefault("backend.auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("backend.log.level", "info")
	v.SetDefault("backend.log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("backend.http.host"), Port: v.GetInt("backend.http.port")},
		DB: DB{
			Driver: strings.ToLower(v.GetString("backend.db.driver")),
			DSN:    v.GetString("backend.db.dsn"),
			Host:   v.GetString("backend.db.host"),
			Port:   v.GetInt("backend.db.port"),
			User:   v.GetString("backend.db.user"),
			Pass:   v.GetString("backend.db.pass"),
			Name:   v.GetString("backend.db.name"),
		},
		JWT: JWT{
			Secret:    v.GetString("backend.jwt.secret"),
			Algorithm: strings.ToUpper(v.GetString("backend.jwt.algorithm")),
			ExpMin:    v.GetInt("backend.jwt.exp_min"),
		},
		Auth: Auth{
			Pepper:     v.GetString("backend.auth.pepper"),
			BcryptCost: v.GetInt("backend.auth.bcrypt_cost"),
		},
		Log: Log{Level: v.GetString("backend.log.level"), Format: v.GetString("backend.log.format")},
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 30
	}
	if cfg.Auth.BcryptCost <= 0 {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: backend.jwt.secret is required")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: unsupported jwt algorithm %q", c.JWT.Algorithm)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("config: bcrypt cost %d out of range", c.Auth.BcryptCost)
	}
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported db driver %q", c.DB.Driver)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

// ResolveDSN returns the explicit DSN, or one built from the discrete fields.
func (d DB) ResolveDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case "mysql":
		port := d.Port
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", d.User, d.Pass, d.Host, port, d.Name)
	case "postgres":
		port := d.Port
		if port == 0 {
			port = 5432
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", d.Host, port, d.User, d.Pass, d.Name)
	default:
		return d.Name + ".db"
	}
}
