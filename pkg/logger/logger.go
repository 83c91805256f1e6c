package logger

import (
	"time"

	"pos-service/pkg/config"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextKey is the echo.Context key holding the request scoped logger
const ContextKey = "logger"

// New builds a zap logger for the configured environment and level.
func New(cfg *config.Config) (*zap.Logger, error) {
	var logConfig zap.Config

	if cfg.Server.Env == "production" {
		// Production mode: structured JSON logs
		logConfig = zap.NewProductionConfig()
		logConfig.EncoderConfig.TimeKey = "timestamp"
		logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		// Development mode: colorful, human-readable logs
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	logConfig.Level = zap.NewAtomicLevelAt(level)

	return logConfig.Build(zap.Fields(
		zap.String("service", cfg.API.Title),
		zap.String("version", cfg.API.Version),
		zap.String("environment", cfg.Server.Env),
	))
}

// FromContext retrieves the request logger from the echo context, falling back to the global logger
func FromContext(c echo.Context) *zap.Logger {
	if log, ok := c.Get(ContextKey).(*zap.Logger); ok {
		return log
	}
	return zap.L()
}

// Middleware returns an Echo middleware that logs every HTTP request
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the response so the logged status is the real one
				c.Error(err)
			}

			fields := []zapcore.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
				zap.String("user_agent", c.Request().UserAgent()),
			}

			log := FromContext(c)
			switch {
			case err != nil:
				log.Error("HTTP request failed", append(fields, zap.Error(err))...)
			case c.Response().Status >= 500:
				log.Warn("HTTP request completed with server error", fields...)
			default:
				log.Info("HTTP request completed", fields...)
			}
			return nil
		}
	}
}
