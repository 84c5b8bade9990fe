// Package config defines the YAML configuration file of tripchart.
//
// Values are resolved in three layers: built-in defaults, then the config
// file, then command line flags. This package covers the first two; flag
// overrides are applied by the CLI on top of a loaded [Config].
package config
