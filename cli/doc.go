// Package cli implements the command-line interface for postview.
//
// The cli package provides:
// - Command-line flag parsing and data source selection
// - The interactive list view of fetched posts
// - Plain text rendering for pipes and scripts
package cli
