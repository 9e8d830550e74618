// Package confloader provides configuration loading for PairLink.
//
// This package implements a flexible configuration loader that supports
// multiple sources using koanf as the underlying library.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (loaded as maps)
//  2. Environment variables
//  3. Configuration files (YAML)
//  4. Default values
//
// It also provides a file watcher for automatic reload on config
// changes, built on fsnotify.
package confloader
