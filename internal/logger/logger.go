// Package logger configures the global zap logger.
package logger

import (
	"go.uber.org/zap"
)

// Init builds a zap logger for the given environment and installs it as the
// process-wide logger. Services log through zap.L().
func Init(env string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if env == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
