package types

import "go.uber.org/zap"

// Logger is a named sugared logger. LogsPath is set when logging to a file.
type Logger struct {
	*zap.SugaredLogger
	LogsPath string
	Name     string
}
