// Package main hosts the anishelf CLI entrypoint and command graph.
//
// The Cobra-based command tree covers catalog import, release resolution,
// collection management, the HTTP API server, and configuration scaffolding.
// Command logic stays thin; the heavy lifting lives in the internal packages.
package main
