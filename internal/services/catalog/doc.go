// Package catalog loads master data (countries, states, project types,
// roles and customer types) for the project Details step.
package catalog
