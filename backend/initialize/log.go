package initialize

import (
	"io"
	"os"

	"ponto/backend/config"
	"ponto/backend/global"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	// basic zerolog setup: console writer to stdout
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	logger := log.Output(cw)
	global.Logger = logger
}

// InitLogger points the global logger at cfg.Path (rotated) or stdout.
func InitLogger(cfg config.Log) {
	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stdout}
	if cfg.Path != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    10,
			MaxBackups: 10,
			MaxAge:     30,
			LocalTime:  true,
		}
	}
	global.Logger = zerolog.New(w).With().Timestamp().Logger()
	SetLevel(cfg.Level)
}

// SetLevel changes the process-wide minimum level; safe to call while serving.
func SetLevel(name string) zerolog.Level {
	lvl := ParseLevel(name)
	zerolog.SetGlobalLevel(lvl)
	return lvl
}

// ParseLevel falls back to info for unknown names.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
