// Package tiles provides the stock status line tiles.
//
// Tiles read editor state through the Editor interface and never cache more
// than what they need between Refresh and Content. A value that is simply not
// there (no repository, no language server, no diagnostics) renders as empty
// content; only failing host calls are reported as errors.
package tiles
