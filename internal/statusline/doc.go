// Package statusline composes tiles into status line, window bar or tab line
// format strings.
//
// A Line is built once with tiles registered into five sections (left,
// left-center, center, right-center, right) and rendered by the host on every
// redraw. The first Render installs each tile's highlight groups; later
// renders only reinstall groups whose computed style changed since the
// previous pass.
//
// Output uses the status format understood by package statusfmt:
//
//	left%=lcenter center rcenter%=right
//
// with left/right and the two center-adjacent sections padded to equal
// display width so the center section stays centered.
package statusline
