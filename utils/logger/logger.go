package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/octabyte/emaar-web/enums"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string `mapstructure:"level"`
	Env         string `mapstructure:"env"`
	ServiceName string `mapstructure:"service_name"`
	// Encoding is "json" or "console". Empty picks console for the
	// development env and json otherwise.
	Encoding string `mapstructure:"encoding"`
}

func Init(cfg *Config) {
	encoding := resolveEncoding(cfg)

	encoderCfg := zap.NewProductionEncoderConfig()
	if encoding == enums.LogEncodingConsole {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(getLogLevelFromString(cfg.Level)),
		Development:       cfg.Env == enums.EnvDevelopment,
		DisableCaller:     false,
		DisableStacktrace: encoding == enums.LogEncodingConsole,
		Sampling:          nil,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths: []string{
			"stdout",
		},
		ErrorOutputPaths: []string{
			"stderr",
		},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"env":     cfg.Env,
			"service": cfg.ServiceName,
		},
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	logger = logger.WithOptions(zap.AddCallerSkip(1))

	zap.ReplaceGlobals(zap.Must(logger, err))
}

func resolveEncoding(cfg *Config) string {
	switch strings.ToLower(strings.TrimSpace(cfg.Encoding)) {
	case enums.LogEncodingJSON:
		return enums.LogEncodingJSON
	case enums.LogEncodingConsole:
		return enums.LogEncodingConsole
	}
	if cfg.Env == enums.EnvDevelopment {
		return enums.LogEncodingConsole
	}
	return enums.LogEncodingJSON
}

// With returns the global logger with fields attached, for request-scoped
// logging.
func With(fields ...zap.Field) *zap.Logger {
	return zap.L().With(fields...)
}

func LogDebug(msg string, fields ...zap.Field) {
	zap.L().Debug(msg, fields...)
}

func LogInfo(msg string, fields ...zap.Field) {
	zap.L().Info(msg, fields...)
}

func LogWarn(msg string, fields ...zap.Field) {
	zap.L().Warn(msg, fields...)
}

func LogWarnf(msg string, args ...interface{}) {
	if len(args) == 0 {
		zap.L().Warn(msg)
		return
	}
	fmtdMsg := fmt.Sprintf(msg, args...)
	zap.L().Warn(fmtdMsg)
}

func LogError(msg string, fields ...zap.Field) {
	zap.L().Error(msg, fields...)
}

func getLogLevelFromString(level string) zapcore.Level {
	// Make level parsing case-insensitive and handle common variations
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug", "dbg":
		return zapcore.DebugLevel
	case "info", "information":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "err":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	case "panic":
		return zapcore.PanicLevel
	default:
		return zapcore.InfoLevel
	}
}

func Sync() {
	_ = zap.L().Sync()
}
