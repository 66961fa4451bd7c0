package logger

import (
	"go.uber.org/zap"
)

// New builds a zap logger for the given level. Production uses the JSON
// encoder; every other environment gets the console development config.
func New(level, environment string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	var zapcfg zap.Config
	if environment == "production" {
		zapcfg = zap.NewProductionConfig()
	} else {
		zapcfg = zap.NewDevelopmentConfig()
	}
	zapcfg.Level = lvl

	return zapcfg.Build()
}
