// Package logger exposes a process-wide zap logger with package-level
// convenience wrappers. Production config is selected when APP_ENV is
// "production"; development config (console encoder, Debug enabled)
// otherwise.
package logger

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger = getLogger()

func getLogger() *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if os.Getenv("APP_ENV") == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("logger: unable to build zap logger: " + err.Error())
	}
	return log
}

// Get returns the global logger, e.g. to hand to libraries that take a
// *zap.Logger directly.
func Get() *zap.Logger {
	return Log
}

func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}
