package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DB struct {
	Driver string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	// Path is the sqlite file (or ":memory:") when Driver is "sqlite".
	Path string
	// DSN overrides every other field when set.
	DSN string
}

type HTTP struct {
	Host string
	Port int
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Log struct {
	Path  string
	Level string
}

// Admin is a seeded administrator account.
type Admin struct {
	NomeCompleto string `mapstructure:"nome_completo"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
}

type Config struct {
	HTTP HTTP
	DB   DB
	JWT  struct {
		Secret string
		Issuer string
		ExpMin int
	}
	Redis          Redis
	Log            Log
	Timezone       string
	BootstrapAdmin Admin
	Admins         []Admin
}

// Location resolves Timezone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads the YAML file at path (optional when empty), then .env and PONTO_* variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ponto")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("backend.jwt.secret", "PONTO_BACKEND_JWT_SECRET", "JWT_SECRET_KEY")
	_ = v.BindEnv("backend.db.dsn", "PONTO_BACKEND_DB_DSN", "DATABASE_URL")

	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return fromViper(v)
}

// Watch calls fn with the freshly parsed config whenever the file at path changes.
func Watch(path string, fn func(*Config)) error {
	if path == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		if cfg, err := fromViper(v); err == nil {
			fn(cfg)
		}
	})
	v.WatchConfig()
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.host", "0.0.0.0")
	v.SetDefault("backend.port", 5001)
	v.SetDefault("backend.db.driver", "mysql")
	v.SetDefault("backend.db.host", "127.0.0.1")
	v.SetDefault("backend.db.port", 3306)
	v.SetDefault("backend.db.user", "root")
	v.SetDefault("backend.db.pass", "")
	v.SetDefault("backend.db.name", "ponto")
	v.SetDefault("backend.db.path", "ponto.db")
	v.SetDefault("backend.timezone", "America/Sao_Paulo")
	v.SetDefault("backend.log.level", "info")
	v.SetDefault("backend.bootstrap_admin.nome_completo", "Administrador")
	v.SetDefault("backend.bootstrap_admin.username", "admin")
	v.SetDefault("backend.bootstrap_admin.password", "admin123")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("backend.host"), Port: v.GetInt("backend.port")},
		DB: DB{
			Driver: strings.ToLower(v.GetString("backend.db.driver")),
			Host:   v.GetString("backend.db.host"),
			Port:   v.GetInt("backend.db.port"),
			User:   v.GetString("backend.db.user"),
			Pass:   v.GetString("backend.db.pass"),
			Name:   v.GetString("backend.db.name"),
			Path:   v.GetString("backend.db.path"),
			DSN:    v.GetString("backend.db.dsn"),
		},
		Redis: Redis{
			Addr:     v.GetString("backend.redis.addr"),
			Password: v.GetString("backend.redis.password"),
			DB:       v.GetInt("backend.redis.db"),
		},
		Log:      Log{Path: v.GetString("backend.log.path"), Level: v.GetString("backend.log.level")},
		Timezone: v.GetString("backend.timezone"),
	}
	if err := v.UnmarshalKey("backend.bootstrap_admin", &cfg.BootstrapAdmin); err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}
	if err := v.UnmarshalKey("backend.admins", &cfg.Admins); err != nil {
		return nil, fmt.Errorf("admins: %w", err)
	}
	switch cfg.DB.Driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	cfg.JWT.Secret = v.GetString("backend.jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("backend.jwt.issuer")
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "ponto-api"
	}
	cfg.JWT.ExpMin = v.GetInt("backend.jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 480
	}
	return cfg, nil
}
