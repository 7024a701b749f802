package logger

import (
	"go.uber.org/zap"
)

// New creates a zap logger for the given environment. Development gets the
// human-readable console encoder, everything else gets production JSON.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed creates a logger for the environment and names it after the
// service so every entry carries its origin.
func NewNamed(env, service string) (*zap.Logger, error) {
	log, err := New(env)
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
