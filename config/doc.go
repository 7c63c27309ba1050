// Package config loads client configuration from YAML files, .env
// files and environment variables, in ascending precedence.
//
// Environment variables use the NOVELKIT_ prefix with underscores for
// nesting: NOVELKIT_API_BASE_URL maps to the api.base_url key.
//
//	var cfg novel.Config
//	err := config.Load(&cfg, config.WithConfigFile("novelkit.yml"))
package config
