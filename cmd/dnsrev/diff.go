package main

import (
	"io"

	"github.com/pmezard/go-difflib/difflib"
)

// printDiff writes a unified diff between the original and new zone file contents
func printDiff(w io.Writer, path, before, after string) error {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (new)",
		Context:  3,
	}

	return difflib.WriteUnifiedDiff(w, ud)
}
