package zonefile

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// DefaultMarker delimits the auto section. It must be byte-identical on both boundaries.
const DefaultMarker = ";; ---- dnsrev ---- automatically generated, do not edit ---- dnsrev ----"

// Sections is a zone file split around its auto section
type Sections struct {
	Prefix string // Up to and including the first marker line
	Auto   string // Between the marker lines
	Suffix string // From the last marker line onwards
	Found  bool   // False if the marker is absent and Prefix holds the whole file
}

// Split divides text at the first and last lines containing marker. If marker appears on
// only one line, the auto section runs to the end of text and Suffix is empty.
func Split(text, marker string) (sec Sections) {
	first := strings.Index(text, marker)
	if first == -1 {
		sec.Prefix = text
		return
	}
	sec.Found = true

	prefixEnd := len(text)
	if nl := strings.IndexByte(text[first:], '\n'); nl != -1 {
		prefixEnd = first + nl + 1
	}
	sec.Prefix = text[:prefixEnd]

	last := strings.LastIndex(text, marker)
	suffixStart := strings.LastIndexByte(text[:last], '\n') + 1
	if suffixStart < prefixEnd { // Only one marker line
		sec.Auto = text[prefixEnd:]
		return
	}
	sec.Auto = text[prefixEnd:suffixStart]
	sec.Suffix = text[suffixStart:]

	return
}

// Render returns the zone file lines for the PTRs in the supplied order. Names are fully
// qualified so the lines are independent of any $ORIGIN in the manual content.
func Render(ptrs []*dns.PTR) string {
	var sb strings.Builder
	for _, ptr := range ptrs {
		fmt.Fprintf(&sb, "%s IN PTR %s\n", ptr.Hdr.Name, ptr.Ptr)
	}

	return sb.String()
}

// Merge replaces the auto section of existing with the rendered PTRs. changed is true if
// the resulting text differs from existing, which, when both markers are present, only
// happens if the rendered PTRs differ from the previous auto section. Prefix and suffix
// are carried across untouched.
func Merge(existing, marker string, ptrs []*dns.PTR) (newText string, changed bool) {
	sec := Split(existing, marker)
	middle := Render(ptrs)

	var sb strings.Builder
	sb.WriteString(sec.Prefix)
	if !sec.Found {
		if len(sec.Prefix) > 0 && !strings.HasSuffix(sec.Prefix, "\n") {
			sb.WriteByte('\n')
		}
		sb.WriteString(marker + "\n")
	} else if !strings.HasSuffix(sec.Prefix, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(middle)
	if len(sec.Suffix) > 0 {
		sb.WriteString(sec.Suffix)
	} else {
		sb.WriteString(marker + "\n")
	}
	newText = sb.String()

	return newText, newText != existing
}
