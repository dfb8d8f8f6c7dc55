// Package backend is an in-memory implementation of the lien backend API,
// used by cmd/devbackend for local work and by tests that drive the real
// HTTP gateway end to end.
//
// HTTP API
//
//	POST /signup, POST /login
//	    Exchange credentials for an HS256 bearer token. Passwords are
//	    bcrypt-hashed. Every other route needs "Authorization: Bearer".
//
//	GET /countries, POST /states, GET /project-types, GET /project-roles,
//	POST /check-project-roles-customers
//	    Master data from seed.toml. Customer types depend on the role and,
//	    for some roles, on the project type.
//
//	POST /remedy-dates, POST /deadline-info
//	    Remedy date fields per state and a fixture deadline table: each
//	    rule adds a number of days to one furnishing date. daysRemaining is
//	    relative to the server clock.
//
//	GET /projects/info?project_id=, POST /save-project
//	    Read or create/update a project. Bodies are checked against a JSON
//	    schema; failures are 422 {"message", "errors": {field: [msg]}}.
//
//	POST /projects/wizard/save-step, DELETE /projects/wizard/draft/{id}
//	    Server-side copies of unfinished wizard drafts.
//
//	GET /project-contacts-all, POST /save-customer-contact,
//	POST /save-project-contact
//
//	GET /documents?project_id=, POST /documents/upload, POST /document/delete
//	    Upload is multipart/form-data with project_id and documents[] parts.
//	    Contents are counted against the size limit and then dropped.
//
//	GET /task-actions, GET /tasks/count, GET /tasks, GET /tasks/{id},
//	POST /tasks
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Users only see their own projects, contacts, documents and tasks.
//   - Responses are JSON. Errors carry {"message"} and, for validation
//     failures, {"errors"}.
//   - An access log records method, path, status, bytes and duration.
package backend
