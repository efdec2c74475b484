// Package handlers implements the pibary HTTP API: digit streams, positional
// digits, pattern search, search history and health.
package handlers
