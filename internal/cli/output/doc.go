// Package output provides output formatting for pairlink-cli.
//
// It renders command results as ASCII tables or indented JSON,
// selected by the --output flag.
package output
