package zonefile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NextSerial returns the SOA serial which should replace previous. Serials are of the form
// YYYYMMDDnn. The first change of the day gets nn=00 and subsequent changes increment
// previous. A previous serial from the future, say due to clock skew, is also simply
// incremented so the result is always greater than previous.
func NextSerial(previous uint32, today time.Time) uint32 {
	y, m, d := today.Date()
	candidate := uint32(y*1000000 + int(m)*10000 + d*100)
	if candidate > previous {
		return candidate
	}

	return previous + 1
}

// ReplaceSerial replaces the serial of the first SOA record in text with newSerial. The
// serial is the first token after the SOA type which equals old. Comments are skipped so
// a "; serial" annotation or a date in a comment is never mistaken for the serial.
func ReplaceSerial(text string, old, newSerial uint32) (string, error) {
	oldStr := strconv.FormatUint(uint64(old), 10)
	var soaSeen bool

	for ix := 0; ix < len(text); {
		c := text[ix]
		switch {
		case c == ';':
			nl := strings.IndexByte(text[ix:], '\n')
			if nl == -1 {
				ix = len(text)
			} else {
				ix += nl
			}
			continue
		case isDelimiter(c):
			ix++
			continue
		}

		start := ix
		for ix < len(text) && !isDelimiter(text[ix]) && text[ix] != ';' {
			ix++
		}
		tok := text[start:ix]
		if !soaSeen {
			soaSeen = strings.EqualFold(tok, "SOA")
			continue
		}
		if tok == oldStr {
			return text[:start] + strconv.FormatUint(uint64(newSerial), 10) + text[ix:], nil
		}
	}

	if !soaSeen {
		return text, fmt.Errorf("No SOA record found in zone text")
	}

	return text, fmt.Errorf("SOA serial %d not found in zone text", old)
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')':
		return true
	}

	return false
}
