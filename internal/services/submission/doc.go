// Package submission persists a finished wizard draft: customer, project,
// contacts, documents and tasks, in that order.
package submission
