package fuzz

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

// edgeSeeds are inputs that once broke recovery or span accounting.
var edgeSeeds = []string{
	"",
	"\x00",
	"x :: .{1, 2\n",
	"x :: .[.[.[.[.[.[\n",
	"v :: V.{ /* c */ x = 1 } // tail\nw :: 2 @note\n",
	"/* /* */",
	"\"\\u12\"",
	"S :: struct #no_padding { a: int; b :\n}",
	"#import, file \"a.jai\"\nM :: #import \"Basic\"",
	"a :: 1\r\nb :: 2\rc :: 3",
	"x :: 12_ + 0x_\n",
	"\xef\xbb\xbfx :: 1",
	"é :: \xff",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range edgeSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".jai" {
			return nil
		}
		// #nosec G304 -- path comes from the testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, limit int) []byte {
	return append([]byte(nil), src[:min(len(src), limit)]...)
}
