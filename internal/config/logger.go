package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. JSON output in production so the
// log shipper can parse it; human-readable text everywhere else.
func NewLogger(cfg *AppConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.Env == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	}

	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
