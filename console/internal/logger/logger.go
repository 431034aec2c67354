package logger

import (
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// L discards everything until Init is called so the TUI owns the terminal.
var L = zerolog.Nop()

// Init routes console logs to a rotating file. An empty path keeps logging disabled.
func Init(path, level string) {
	if path == "" {
		return
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	var w io.Writer = &lumberjack.Logger{Filename: path, MaxSize: 5, MaxBackups: 3, MaxAge: 14}
	L = zerolog.New(w).Level(lvl).With().Timestamp().Str("app", "ponto-console").Logger()
}
