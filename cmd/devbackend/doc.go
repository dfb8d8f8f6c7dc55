// Command devbackend runs the in-memory lien backend used by liendesk
// during development and tests. See package internal/backend for the HTTP
// API it serves.
//
// Usage
//
//	devbackend [--addr :8080] [--seed seed.toml] [--token-ttl 12h] [--log-level info]
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - --seed replaces the embedded master data and remedy rule table.
//   - The access log is written as JSON to stderr.
//   - SIGINT/SIGTERM drain in-flight requests before exiting.
//
// The server is meant for local use only. Tokens are signed with a fixed
// development secret unless LIENDESK_DEV_SECRET is set.
package main
