package logger

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents configuration options for logger initialization
type Config struct {
	Debug   bool      // Enable debug logging
	Output  io.Writer // Destination, stdout when nil
	NoColor bool      // Plain level names, for non-terminal output
}

// New builds a console logger named "main".
func New(config Config) *zap.SugaredLogger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if config.NoColor {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}

	var out io.Writer = os.Stdout
	if config.Output != nil {
		out = config.Output
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(out)), level)
	return zap.New(core, zap.AddCaller()).Named("main").Sugar()
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}
