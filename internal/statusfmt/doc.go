// Package statusfmt evaluates status line format strings.
//
// A format string mixes literal text with items introduced by '%':
//
//	%%          a literal percent sign
//	%#Group#    switch to highlight group Group
//	%*          return to the line's base group
//	%=          separation point, expanded to fill the available width
//	%t %f       file name tail / file name as given
//	%c %l %L    column, line, line count
//	%m %r %y    modified flag, read-only flag, file type
//	%{expr}     result of expr
//	%{%expr%}   result of expr, evaluated again as a format string
//
// Items accept the flags "-" (left align), "0" (zero pad), a minimum width and
// ".maxwidth", as in "%3.c" or "%-3.l". A format starting with "%!" is an
// expression whose result is the real format.
//
// Widths are measured in terminal cells, so wide and ambiguous glyphs count
// the way the terminal draws them.
package statusfmt
