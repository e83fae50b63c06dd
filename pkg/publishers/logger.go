package publishers

import "github.com/samvad-hq/echohub-buster/internal/logger"

// Logger is the service logger; publishers log delivery through it.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger {
	return logger.Ensure(log)
}
