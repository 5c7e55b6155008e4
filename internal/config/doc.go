// Package config loads, normalizes, and validates scribe configuration.
//
// A configuration file is optional. When present it may be TOML or YAML
// (chosen by extension) and can override the application identifier, the
// storage location, the log level and the audio player command.
package config
