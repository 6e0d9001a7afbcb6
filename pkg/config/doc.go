// Package config provides configuration loading, validation, and live
// reloading for the oops server.
//
// Configuration is read from a YAML file, overlaid with OOPS_* environment
// variables, and validated before use. The faults section supports hot
// reload via a filesystem watcher so the stack trace exposure flag can be
// flipped on a running server without a restart.
//
// Loading sequence:
//
//  1. Read YAML from file
//  2. Apply defaults
//  3. Apply environment variable overrides
//  4. Validate the final configuration
package config
