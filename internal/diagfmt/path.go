package diagfmt

import "jaiparse/internal/source"

func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeAuto:
		return f.FormatPath("auto", "")
	}
	return f.FormatPath(mode.String(), "")
}

// knownFile reports whether sp points into fs.
func knownFile(fs *source.FileSet, sp source.Span) bool {
	return fs != nil && int(sp.File) < fs.Len()
}
