package tiles

// Nerd font glyphs.
const (
	IconFolder     = "\U000f024b"
	IconGood       = "\uf00c"
	IconBad        = "\uf00d"
	IconError      = "\uf530"
	IconWarn       = "\uf071"
	IconHint       = "\U000f0335"
	IconInfo       = "\uf05a"
	IconMagnifier  = "\ue644"
	IconCodeCwd    = "\uf44f"
	IconDesktopCwd = "\uf108"
	IconHomeCwd    = "\uf015"
	IconNvimCwd    = "\uf36f"
	IconLSP        = "\uf085"
	IconFormatter  = "\uee72"
	IconGitBranch  = "\ue725"
	IconGitDiff    = "\uf4d2"
	IconFile       = "\U000f0214"
)
