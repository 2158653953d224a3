// Package mcp implements the Model Context Protocol server for postview.
//
// It exposes a single tool that injects a data source into a list controller
// and returns the fetched records.
package mcp
