package initialize

import (
	"os"
	"postboard/backend/config"
	"postboard/backend/global"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"
)

func init() {
	// basic zerolog setup: console writer to stdout
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	global.Logger = log.Output(cw)
}

// InitLogger replaces the default console logger according to cfg.
func InitLogger(cfg config.Log) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	var l zerolog.Logger
	if cfg.Format == "json" {
		l = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		l = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	global.Logger = l.Level(level)
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug", "trace":
		return logger.Info
	case "disabled":
		return logger.Silent
	case "error", "fatal", "panic":
		return logger.Error
	default:
		return logger.Warn
	}
}
