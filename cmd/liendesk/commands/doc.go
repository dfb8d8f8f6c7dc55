// Package commands defines the liendesk CLI and wires dependencies for subcommands.
//
// Commands
//
//   - auth        login, signup, logout, whoami
//   - wizard      the eleven-step new-project wizard: start, status, show,
//     set, next, back, goto, deadlines, save-exit, cancel, submit, item
//     subcommands (stage, contact, document, task) and the interactive
//     modes run, tui and edit
//   - remedies    deadline lookup without a project
//   - catalog     countries, states, project types, roles, customer types
//   - projects    show and recent
//   - contacts    list and fuzzy search
//   - documents   list (with --match glob), upload, delete
//   - tasks       list, count, show, actions
//
// # Implementation
//
// The root command loads {home}/config.yaml and LIENDESK_* overrides, then
// builds the dependency graph (gateway, stores, services) before any
// subcommand runs. The draft store is opened only by wizard commands.
// Commands that call the backend load the encrypted session first; -o json
// or -o yaml switches output to machine-readable form.
package commands
