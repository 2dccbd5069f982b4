package domain

// DownloadOptions describes a single invocation of the tool. It is derived
// from CLI flags and never mutated after parsing.
type DownloadOptions struct {
	OutputDir    string
	Name         string
	IsPlaylist   bool
	SkipExisting bool
}

// Summary tallies the outcome of a playlist run.
type Summary struct {
	Attempted int
	Succeeded int
	Failed    int
}
