// Package cli implements the sports-scores command: serving the HTTP API by
// default, plus one-shot fetch and league listing subcommands.
package cli
