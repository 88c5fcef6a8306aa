package feedbot

import (
	"log/slog"
	"os"
)

var pkgLogger *slog.Logger
var pkgLogLevel *slog.LevelVar

func init() {
	pkgLogLevel = new(slog.LevelVar)
	pkgLogLevel.Set(slog.LevelInfo)

	handlerOptions := &slog.HandlerOptions{
		Level: pkgLogLevel,
	}
	pkgLogger = slog.New(slog.NewTextHandler(os.Stdout, handlerOptions))
}

// SetLogger replaces the package logger. Loggers set this way are not
// affected by SetLogLevel unless they share a LevelVar with the caller.
func SetLogger(l *slog.Logger) {
	pkgLogger = l
}

// SetLogLevel changes the level of the default package logger.
func SetLogLevel(level slog.Level) {
	pkgLogLevel.Set(level)
}
