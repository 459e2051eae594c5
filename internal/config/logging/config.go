// Package logging holds logger configuration settings.
package logging

// Config represents logging configuration settings.
type Config struct {
	// Level is the minimum logging level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Encoding sets the logger's encoding ("console" or "json").
	Encoding string `yaml:"encoding"`
	// Development enables development-mode formatting and stack traces.
	Development bool `yaml:"development"`
}
