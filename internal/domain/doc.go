// Package domain defines the project, draft and wizard models and the
// contracts (gateway, stores, services) shared across liendesk.
// It contains plain types and interfaces only; the subpackages hold the
// definitions and this package re-exports them under short names.
package domain
