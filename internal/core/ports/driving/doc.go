// Package driving provides interfaces for application entry points
// (primary/inbound ports). The CLI, MCP server, and inbox watcher all
// drive the core through these.
package driving
