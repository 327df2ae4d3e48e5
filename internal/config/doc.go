// Package config defines webcrawl's configuration: defaults, CLI-populated
// settings, validation, and the optional .webcrawl YAML file with per-host
// overrides.
package config
