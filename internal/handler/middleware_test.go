package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"peer-review-service/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware_Levels(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(handler.LoggingMiddleware(logger))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "nope") })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "upstream") })

	testCases := []struct {
		path   string
		status int
		level  logrus.Level
	}{
		{"/health", http.StatusOK, logrus.DebugLevel},
		{"/ok", http.StatusOK, logrus.InfoLevel},
		{"/missing", http.StatusNotFound, logrus.WarnLevel},
		{"/boom", http.StatusBadGateway, logrus.ErrorLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			hook.Reset()
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.status, rec.Code)
			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tc.level, entry.Level)
			assert.Equal(t, tc.status, entry.Data["status"])
			assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), entry.Data["request_id"])
			assert.NotEmpty(t, entry.Data["request_id"])
		})
	}
}
