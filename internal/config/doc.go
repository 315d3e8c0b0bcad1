// Package config loads Quickcard settings.
//
// Settings come from three layers, highest priority last:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. QUICKCARD_* environment variables
//
// A missing file is not an error; the defaults stand in for it. Watcher
// reloads the file when it changes on disk.
package config
