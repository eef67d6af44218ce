// Package config builds the explicit Config struct used by every component.
// Values come from ~/.colin-cli/config.yaml, the user's ~/.env file, and
// COLIN_* environment variables, resolved once at startup with Viper.
package config
