package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/limaJavier/coursegrid/pkg/config"
	"github.com/limaJavier/coursegrid/pkg/model"
)

// RunKey is the gin context key under which handlers record the run they served
const RunKey = "run"

// New builds the process logger. Every entry carries the scheduler strategy and seed, so a logged run can be reproduced
func New(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
		// Run summaries are never sampled
		zapCfg.Sampling = nil
	}

	zapCfg.Encoding = "json"
	if cfg.Log.Format == "console" {
		zapCfg.Encoding = "console"
	}

	if cfg.Log.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zapcore.InfoLevel
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	zapCfg.EncoderConfig.TimeKey = "time"
	zapCfg.EncoderConfig.MessageKey = "event"
	zapCfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	zapCfg.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	zapCfg.InitialFields = map[string]any{
		"service":  "coursegrid",
		"strategy": cfg.Scheduler.Strategy,
		"seed":     cfg.Scheduler.Seed,
	}

	return zapCfg.Build()
}

// ForRun scopes a logger to one generation run, and to one of its engines when engine is set
func ForRun(l *zap.Logger, runID string, engine model.Engine) *zap.Logger {
	fields := []zap.Field{zap.String("run", runID)}
	if engine != "" {
		fields = append(fields, zap.String("engine", string(engine)))
	}
	return l.With(fields...)
}

// GinMiddleware logs one entry per request at a level following the response status
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes", c.Writer.Size()),
		}
		if run := c.GetString(RunKey); run != "" {
			fields = append(fields, zap.String("run", run))
		}

		switch {
		case status >= 500:
			l.Error("request served", fields...)
		case status >= 400:
			l.Warn("request served", fields...)
		default:
			l.Info("request served", fields...)
		}
	}
}
