// Package contact lists project contacts and ranks them with fuzzy search.
package contact
