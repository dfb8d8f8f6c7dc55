// Package tui is the full-screen wizard: a bubbletea program over a
// wizard.Controller.
//
// Each editable field of the current step gets a text input. A field is
// applied when focus leaves it or on enter; ctrl+n continues only when the
// step validates. Remedy date fields and deadlines are fetched in the
// background. Every edit bumps a generation counter and a response that
// arrives for an older generation is dropped, so a slow reply can never
// overwrite results for newer inputs.
package tui
