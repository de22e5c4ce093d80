package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/limaJavier/coursegrid/pkg/config"
	"github.com/limaJavier/coursegrid/pkg/model"
)

func TestNew(t *testing.T) {
	t.Run("Configured level", func(t *testing.T) {
		l, err := New(&config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "warn", Format: "json"}})
		require.NoError(t, err)

		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		l, err := New(&config.Config{Env: config.EnvDevelopment, Log: config.LogConfig{Level: "verbose", Format: "console"}})
		require.NoError(t, err)

		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("Development defaults to debug", func(t *testing.T) {
		l, err := New(&config.Config{Env: config.EnvDevelopment})
		require.NoError(t, err)

		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestForRun(t *testing.T) {
	//** Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)

	//** Act
	ForRun(l, "run-1", model.CoreEngine).Info("core timetable built")
	ForRun(l, "run-1", "").Info("demand simulated")

	//** Assert
	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"run": "run-1", "engine": "core"}, entries[0].ContextMap())
	assert.Equal(t, map[string]any{"run": "run-1"}, entries[1].ContextMap())
}

func TestGinMiddleware(t *testing.T) {
	//** Arrange
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/timetables/:id", func(c *gin.Context) {
		c.Set(RunKey, c.Param("id"))
		c.Status(http.StatusOK)
	})
	router.POST("/generate-timetable", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	//** Act
	for _, request := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/timetables/abc", nil),
		httptest.NewRequest(http.MethodPost, "/generate-timetable", nil),
		httptest.NewRequest(http.MethodGet, "/missing", nil),
	} {
		router.ServeHTTP(httptest.NewRecorder(), request)
	}

	//** Assert
	entries := logs.All()
	require.Len(t, entries, 3)

	t.Run("Run id and route are recorded", func(t *testing.T) {
		fields := entries[0].ContextMap()
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "/timetables/:id", fields["route"])
		assert.Equal(t, "abc", fields["run"])
		assert.Equal(t, int64(http.StatusOK), fields["status"])
	})

	t.Run("Client errors are warnings", func(t *testing.T) {
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.NotContains(t, entries[1].ContextMap(), "run")
	})

	t.Run("Unmatched routes", func(t *testing.T) {
		assert.Equal(t, "unmatched", entries[2].ContextMap()["route"])
		assert.Equal(t, int64(http.StatusNotFound), entries[2].ContextMap()["status"])
	})
}
