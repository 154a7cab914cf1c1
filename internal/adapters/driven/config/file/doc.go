// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration under the reader config directory
//   - Watcher: reloads the ConfigStore when config.toml changes on disk
package file
