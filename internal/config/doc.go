// Package config loads service configuration from the environment.
//
// A .env file is honored in development; real environment variables win.
// Every knob has a default so the service starts with zero configuration.
package config
