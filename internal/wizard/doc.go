// Package wizard implements the eleven-step project wizard.
//
// A Controller owns the draft, the current step and the highest step
// reached. Each step is a Unit: a list of typed Fields over its slice of
// the draft plus a validity check. Field edits become top-level Patches
// that the controller shallow-merges and persists through a DraftStore, so
// a wizard can be resumed from another process.
//
// Navigation is ungated (Next, Back, GoTo up to the highest step reached);
// Continue is the gated form that validates the current step first.
// Submission is only possible from the info sheet step and re-validates
// every step before handing the draft to the submitter.
package wizard
