// Package host holds the in-process editor state the status lines are
// rendered against.
//
// A Session tracks the mode, working directory, buffers with their variables,
// options and diagnostics, attached language servers and formatters. It
// answers tile queries, installs highlight groups into a theme.Registry and
// measures status formats with statusfmt.
//
// Mutations that other components react to are announced through a Notifier:
//
//	DiagnosticChanged  after SetDiagnostics
//	BufEnter           after Open and SwitchAlt, matched against the file name
//	BufWritePost       after Write, matched against the file name
//	ModeChanged        after SetMode, matched against "old:new"
package host
