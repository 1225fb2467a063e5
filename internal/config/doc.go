// Package config defines the application configuration and loads it from
// environment variables and an optional config file.
package config
