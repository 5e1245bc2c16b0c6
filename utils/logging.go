package utils

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// InitLogger builds the process logger. Release mode logs JSON, anything else
// logs human readable development output.
func InitLogger(mode string) *zap.Logger {
	loggerOnce.Do(func() {
		var err error
		if mode == "release" {
			logger, err = zap.NewProduction()
		} else {
			logger, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	})
	return logger
}

func GetLogger() *zap.Logger {
	if logger == nil {
		return InitLogger(os.Getenv("GIN_MODE"))
	}
	return logger
}
