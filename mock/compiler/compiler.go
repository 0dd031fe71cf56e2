package compiler

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/miekg/dns"

	"github.com/markdingo/dnsrev/log"
)

// Compiler stands in for named-compilezone. It loads the zone file with the miekg zone
// parser and emits each RR in presentation format, one per line, which is close enough
// to "named-compilezone -o -" output for the canon parser.
//
// Zones listed in Fail return the associated text on stderr along with an error, as if
// the real compiler exited non-zero. Every invocation is appended to Calls as
// "zone:path".
type Compiler struct {
	Fail  map[string]string
	Calls []string
}

func (t *Compiler) Run(zone, path string) (stdout, stderr []byte, err error) {
	t.Calls = append(t.Calls, zone+":"+path)
	log.Debug("mock:Compiler:Run:", zone, " ", path)
	if msg, ok := t.Fail[zone]; ok {
		return nil, []byte(msg), errors.New("exit status 1")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, []byte(err.Error()), err
	}
	defer f.Close()

	var sb strings.Builder
	parser := dns.NewZoneParser(f, dns.Fqdn(zone), path)
	parser.SetIncludeAllowed(false)
	parser.SetDefaultTTL(3600)
	for rr, ok := parser.Next(); ok; rr, ok = parser.Next() {
		fmt.Fprintln(&sb, rr.String())
	}
	if err := parser.Err(); err != nil {
		return nil, []byte(fmt.Sprintf("zone %s/IN: %s\n", zone, err.Error())), err
	}

	return []byte(sb.String()), nil, nil
}
