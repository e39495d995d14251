package config

import "errors"

// ErrEmptyPluginName is returned when a "plugins" entry is an empty string.
var ErrEmptyPluginName = errors.New("config: plugin name cannot be empty")

// ErrUnknownSeverity is returned when a diagnosticFilters value does not
// name a recognized severity.
var ErrUnknownSeverity = errors.New("config: unrecognized severity in diagnosticFilters")
