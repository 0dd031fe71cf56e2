package dnsutil

import (
	"fmt"
	"net/netip"
	"strings"
)

// InvertPtrToIP extracts and inverts the purported IP address from a reverse name. Like
// any name in the DNS, a reverse name does not *have* to represent an IP address, but
// this code ignores all else. Return an error if an IP address cannot be extracted. The
// returned int is the number of address bits represented by the name, so a complete
// address returns 32 or 128 and a zone name such as 2.0.192.in-addr.arpa. returns 24.
func InvertPtrToIP(name string) (netip.Addr, int, error) {
	lc := strings.ToLower(name)
	if !strings.HasSuffix(lc, ".") {
		lc += "."
	}
	if strings.HasSuffix(lc, V4Suffix) {
		return InvertPtrToIPv4(strings.TrimSuffix(lc, V4Suffix))
	}
	if strings.HasSuffix(lc, V6Suffix) {
		return InvertPtrToIPv6(strings.TrimSuffix(lc, V6Suffix))
	}

	return netip.Addr{}, 0, fmt.Errorf("Unknown reverse suffix '%s'", name)
}

// InvertPtrToIPv4 takes the first part of a reverse name from the ipv4 tree and converts
// it back into an ipv4 address, if possible. As a reminder, 192.0.2.1 has a reverse name
// of 1.2.0.192.in-addr.arpa. The suffix is removed by the caller leaving just 1.2.0.192.
//
// A truncated name such as 2.0.192 returns 192.0.2.0 with 24 bits.
func InvertPtrToIPv4(name string) (netip.Addr, int, error) {
	if len(name) == 0 {
		return netip.Addr{}, 0, fmt.Errorf("Empty reverse ipv4 address name")
	}
	var octets [4]byte
	reverse := strings.Split(name, ".")
	if len(reverse) > 4 {
		return netip.Addr{}, 0, fmt.Errorf("Malformed reverse ipv4 address '%s'", name)
	}
	ix := len(reverse) - 1
	for _, octet := range reverse {
		v := convertDecimalOctet(octet)
		if v == -1 {
			return netip.Addr{}, 0, fmt.Errorf("Malformed reverse ipv4 address '%s'", name)
		}
		octets[ix] = byte(v)
		ix--
	}

	return netip.AddrFrom4(octets), len(reverse) * V4LabelBits, nil
}

// InvertPtrToIPv6 takes the first part of a reverse name from the ipv6 tree and converts
// it back into an ipv6 address, if possible. Expected input looks something like:
// 3.f.6.d.4.d.3.b.c.4.3.0.1.3.8.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.e.f less the "ip6.arpa."
// suffix.
//
// A truncated name such as 0.8.e.f returns fe80:: with 16 bits.
func InvertPtrToIPv6(name string) (netip.Addr, int, error) {
	if len(name) == 0 {
		return netip.Addr{}, 0, fmt.Errorf("Empty reverse ipv6 address name")
	}
	reverse := strings.Split(name, ".")
	if len(reverse) > 32 {
		return netip.Addr{}, 0, fmt.Errorf("Malformed reverse ipv6 address '%s'", name)
	}

	var b [16]byte
	nx := len(reverse) - 1 // Nibble index from the most significant end
	for _, hStr := range reverse {
		if len(hStr) != 1 {
			return netip.Addr{}, 0, fmt.Errorf("Malformed reverse ipv6 address '%s'", name)
		}
		var v byte
		h := hStr[0]
		switch {
		case h >= '0' && h <= '9':
			v = h - '0'
		case h >= 'a' && h <= 'f':
			v = h - 'a' + 10
		default:
			return netip.Addr{}, 0, fmt.Errorf("Malformed reverse ipv6 address '%s'", name)
		}
		if nx%2 == 0 {
			b[nx/2] |= v << 4
		} else {
			b[nx/2] |= v
		}
		nx--
	}

	return netip.AddrFrom16(b), len(reverse) * V6LabelBits, nil
}

// convertDecimalOctet strictly converts an ipv4 decimal octet to an int. Return -1 if
// conversion fails. Rules: no leading zeroes, numeric range 0-255, length 1-3 bytes and
// no non-digit characters.
func convertDecimalOctet(s string) (ret int) {
	if len(s) == 0 || len(s) > 3 {
		return -1
	}
	if s[0] == '0' && len(s) > 1 {
		return -1
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return -1
		}
		ret *= 10
		ret += int(c - '0')
	}
	if ret > 255 {
		return -1
	}

	return
}
