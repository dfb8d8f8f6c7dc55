// Package gateway provides the HTTP implementation of the domain.Gateway
// interface used by liendesk.
//
// The backend serves master data, remedy deadline calculations, projects
// and their contacts, documents and tasks. This package offers a concrete
// HTTP client for it.
//
// All requests are JSON over HTTP (document uploads are multipart), carry
// the bearer token when one is set, and accept a context for cancellation
// and deadlines. Non-2xx statuses come back typed: validation rejections as
// errors.BackendValidationError, everything else as errors.HTTPError, which
// matches errors.ErrLoginRequired on 401.
package gateway
