/*
Package pregen contains values which are generated as part of the release process.
*/
package pregen

const (
	// Version is auto-generated from ChangeLog.md
	Version = "v0.9.0"
	// ReleaseDate is also auto-generated from ChangeLog.md
	ReleaseDate = "2026-10-17"
)
