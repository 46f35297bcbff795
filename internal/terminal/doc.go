// Package terminal draws evaluated status lines. Painter puts a line on a
// tcell screen row; ANSI turns it into escape sequences for plain output.
//
// Both resolve highlight groups through a theme registry. A group that
// leaves its foreground or background unset inherits it from the line's
// base group (StatusLine or WinBar).
package terminal
