// Package app wires application dependencies for the CLI.
//
// LoadConfig layers {home}/config.yaml and LIENDESK_* environment variables
// over built-in defaults. NewWire builds the gateway, the session store and
// the services from a Config; App adds the lazily opened draft store and
// the wizard controller factories that commands use.
package app
