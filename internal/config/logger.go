package config

import (
	"github.com/sirupsen/logrus"
)

// NewLogger создает JSON-логгер с уровнем из LOG_LEVEL.
// Неизвестный уровень заменяется на info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
