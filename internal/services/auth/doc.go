// Package auth logs users in and out of the lien backend.
//
// It enforces the local passphrase policy, exchanges credentials for a
// bearer token, and persists the resulting session via the
// domain.SessionStore. Current rejects tokens whose exp claim has passed
// so commands fail fast with errors.ErrLoginRequired.
package auth
