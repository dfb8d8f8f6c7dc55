// Package deadline retrieves remedy deadlines and the furnishing dates a
// jurisdiction requires. It backs the wizard's Deadlines step and the
// standalone quick remedies command.
package deadline
