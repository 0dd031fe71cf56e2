package zonefile

import (
	"os"
	"time"

	"github.com/miekg/dns"
)

// ZoneFile is a reverse zone file read into memory with a pending replacement. It is
// read once, modified in memory, then either committed or discarded.
type ZoneFile struct {
	Path     string
	Zone     string
	Marker   string
	Original string   // As read from Path
	Sections Sections // Of Original
	Text     string   // Pending replacement
	Changed  bool     // Auto section differs from Original
}

// Load reads the zone file at path. An empty marker means DefaultMarker.
func Load(path, zone, marker string) (*ZoneFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(marker) == 0 {
		marker = DefaultMarker
	}
	zf := &ZoneFile{Path: path, Zone: dns.Fqdn(zone), Marker: marker, Original: string(b)}
	zf.Sections = Split(zf.Original, marker)
	zf.Text = zf.Original

	return zf, nil
}

// Merge replaces the auto section of the pending text with ptrs and returns true if that
// changed anything.
func (t *ZoneFile) Merge(ptrs []*dns.PTR) bool {
	t.Text, t.Changed = Merge(t.Original, t.Marker, ptrs)

	return t.Changed
}

// UpdateSerial replaces the SOA serial in the pending text with the next serial after
// previous and returns the new serial.
func (t *ZoneFile) UpdateSerial(previous uint32, now time.Time) (uint32, error) {
	next := NextSerial(previous, now)
	text, err := ReplaceSerial(t.Text, previous, next)
	if err != nil {
		return previous, err
	}
	t.Text = text

	return next, nil
}

// Commit writes the pending text to Path unless dryRun is set
func (t *ZoneFile) Commit(dryRun bool) error {
	return Commit(t.Path, t.Text, dryRun)
}
