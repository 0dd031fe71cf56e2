package canon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// Line is a single record line of canonical zone text broken into its fields. The
// canonicalizer always emits "owner [ttl] class type rdata" with a fully qualified owner.
type Line struct {
	Owner  string
	TTL    uint32
	HasTTL bool
	Class  string
	Type   string
	Rdata  string
}

// ParseLine extracts the fields of a canonical record line. It returns false if the line
// does not have the shape of an IN class record with a fully qualified owner, which is
// how blank lines, comments and directives are recognized and skipped. ParseLine does not
// validate rdata; that is the job of the typed conversion in Parse.
func ParseLine(s string) (Line, bool) {
	var l Line
	var tok string

	tok, s = nextField(s)
	if len(tok) == 0 || !strings.HasSuffix(tok, ".") || tok[0] == ';' || tok[0] == '$' {
		return l, false
	}
	l.Owner = tok

	tok, s = nextField(s)
	if ttl, err := strconv.ParseUint(tok, 10, 32); err == nil {
		l.TTL = uint32(ttl)
		l.HasTTL = true
		tok, s = nextField(s)
	}

	if tok != "IN" {
		return l, false
	}
	l.Class = tok

	l.Type, s = nextField(s)
	l.Rdata = strings.TrimSpace(s)
	if len(l.Type) == 0 || len(l.Rdata) == 0 {
		return l, false
	}

	return l, true
}

// nextField returns the first whitespace-delimited token of s and the remainder of s
// following that token.
func nextField(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	ix := strings.IndexAny(s, " \t")
	if ix == -1 {
		return s, ""
	}

	return s[:ix], s[ix:]
}

// RR converts the line into a typed miekg RR. The TTL is carried over if present.
func (t Line) RR() (dns.RR, error) {
	return dns.NewRR(fmt.Sprintf("%s %d %s %s %s", t.Owner, t.TTL, t.Class, t.Type, t.Rdata))
}

// Parse converts canonical zone text into typed RRs in the order they appear. Only lines
// whose type is in the types set are converted; all other lines are ignored. A line of a
// wanted type which cannot be converted is a *ZoneCompileError as it means the
// canonicalizer output is not what we think it is. An empty types list selects all
// types.
func Parse(zone, path string, text []byte, types ...uint16) ([]dns.RR, error) {
	want := make(map[uint16]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	var rrs []dns.RR
	for ix, s := range strings.Split(string(text), "\n") {
		l, ok := ParseLine(strings.TrimSuffix(s, "\r"))
		if !ok {
			continue
		}
		rrType, known := dns.StringToType[strings.ToUpper(l.Type)]
		if len(want) > 0 && (!known || !want[rrType]) {
			continue
		}
		rr, err := l.RR()
		if err != nil {
			return nil, &ZoneCompileError{Zone: zone, Path: path, Line: ix + 1, Text: s, err: err}
		}
		rrs = append(rrs, rr)
	}

	return rrs, nil
}
