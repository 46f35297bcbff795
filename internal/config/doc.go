// Package config loads the stormline TOML configuration.
//
// A configuration names the tiles of the status line and the winbar per
// section, overrides palette colors and declares working directory aliases:
//
//	log_level = "info"
//
//	[palette]
//	blue = "#41a7fc"
//
//	[statusline]
//	left = ["mode", "cwd", "git_branch", "diagnostic_global"]
//	right = ["zoom", "loc"]
//	exclude_filetypes = ["dashboard"]
//
//	[[cwd]]
//	path = "~/code"
//	name = "code"
//	color = "blue"
//
// Keys missing from the file keep their defaults. A missing file yields
// Default. Watcher reloads the file when it changes on disk.
package config
