package canon

import (
	"github.com/miekg/dns"

	"github.com/markdingo/dnsrev/log"
)

// Reader obtains the resource records of a zone file by way of an external canonicalizer
// so that dnsrev never has to deal with the full generality of zone file syntax.
type Reader struct {
	runner Runner
}

// NewReader returns a Reader which uses the supplied Runner. A nil Runner means an
// ExecRunner for DefaultCompiler.
func NewReader(r Runner) *Reader {
	if r == nil {
		r = NewExecRunner("")
	}

	return &Reader{runner: r}
}

// Read canonicalizes the zone file at path and returns the RRs of the requested types in
// canonicalizer output order. Any failure of the canonicalizer is returned as a
// *ZoneCompileError containing its stderr output verbatim. There are no retries.
func (t *Reader) Read(path, zone string, types ...uint16) ([]dns.RR, error) {
	zone = dns.Fqdn(zone)
	stdout, stderr, err := t.runner.Run(zone, path)
	if err != nil {
		return nil, &ZoneCompileError{Zone: zone, Path: path, Stderr: string(stderr), err: err}
	}

	rrs, err := Parse(zone, path, stdout, types...)
	if err != nil {
		return nil, err
	}
	log.Debugf("canon: %s from %s: %d RRs", zone, path, len(rrs))

	return rrs, nil
}
