package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	BaseURL     string
	Timeout     time.Duration
	SessionPath string
	LogPath     string
	LogLevel    string
}

var cfg AppConfig

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ponto", "session.json")
}

// Init reads path (config/console.yaml when empty) plus PONTO_CONSOLE_* variables.
// A missing file leaves the defaults in place.
func Init(path string) AppConfig {
	_ = godotenv.Load()
	if path == "" {
		path = "config/console.yaml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ponto")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("console.base_url", "http://127.0.0.1:5001")
	v.SetDefault("console.timeout", "15s")
	v.SetDefault("console.session_path", defaultSessionPath())
	v.SetDefault("console.log_level", "info")
	_ = v.ReadInConfig()

	cfg = AppConfig{
		BaseURL:     strings.TrimRight(v.GetString("console.base_url"), "/"),
		Timeout:     v.GetDuration("console.timeout"),
		SessionPath: v.GetString("console.session_path"),
		LogPath:     v.GetString("console.log_path"),
		LogLevel:    v.GetString("console.log_level"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return cfg
}

func Get() AppConfig { return cfg }
