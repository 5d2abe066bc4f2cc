package concat

// Options selects the optional directives and comments written around the
// merged file contents.
type Options struct {
	Preamble              bool // Emit SET ANSI_NULLS / SET QUOTED_IDENTIFIER before any content.
	SeparatorBetweenFiles bool // Emit a batch separator after every file but the last.
	TrailingSeparator     bool // Emit one batch separator after all content.
	Comments              bool // Emit the run header and BEGIN/END FILE markers.
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		SeparatorBetweenFiles: true,
		Comments:              true,
	}
}

// Result is the merged script.
type Result struct {
	Text string
}
