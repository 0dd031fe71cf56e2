package zonefile

import (
	"os"
	"path/filepath"

	"github.com/markdingo/dnsrev/log"
)

// Commit atomically replaces target with text. The text is written to a temporary file
// in the same directory as target so the final rename stays on the same file system. The
// temporary file is removed on every failure path so target is either completely
// replaced or left untouched. If target exists its permission bits are carried over.
//
// If dryRun is true the file system is not touched at all.
func Commit(target, text string, dryRun bool) (err error) {
	if dryRun {
		log.Minor("Dry run: not writing ", target)
		return nil
	}

	dir, base := filepath.Split(target)
	if len(dir) == 0 {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close() // Harmless if already closed
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.WriteString(text); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if fi, statErr := os.Stat(target); statErr == nil {
		if err = tmp.Chmod(fi.Mode().Perm()); err != nil {
			return err
		}
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, target); err != nil {
		return err
	}
	log.Debug("Renamed ", tmpName, " to ", target)

	return nil
}
