// Package config loads and validates the application configuration from
// config.yml, with environment overrides for cache settings.
package config
