package logger

import (
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitializeLogger must run before anything logs. Production emits sampled
// JSON, every other environment gets the console encoder.
func InitializeLogger() {
	var err error
	if os.Getenv("ENV") == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	Logger.Info("logger initialized")
}
