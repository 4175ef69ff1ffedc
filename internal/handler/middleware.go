package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// quietPaths логируются на уровне debug, чтобы пробы не засоряли журнал.
var quietPaths = map[string]bool{
	"/health": true,
}

// LoggingMiddleware добавляет структурированное логирование
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Передаем ошибку echo сразу, чтобы статус в логе совпадал с ответом.
				c.Error(err)
			}

			status := c.Response().Status
			entry := logger.WithFields(logrus.Fields{
				"request_id": requestID(c),
				"method":     c.Request().Method,
				"uri":        c.Request().URL.RequestURI(),
				"route":      c.Path(),
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
				"bytes_out":  c.Response().Size,
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
			})

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			switch {
			case status >= 500:
				entry.Error("Server error")
			case status >= 400:
				entry.Warn("Client error")
			case quietPaths[c.Path()]:
				entry.Debug("Request processed")
			default:
				entry.Info("Request processed")
			}

			return nil
		}
	}
}
