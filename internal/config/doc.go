// Package config loads specrebin settings from the environment and rebin
// jobs from YAML files.
package config
