package dnsutil

import (
	"fmt"
	"net/netip"
	"strings"
)

// IPToReverseQName converts an IP address into the reverse string normally looked up in
// the reverse path. It includes the reverse suffix and is fully qualified.
//
// An empty string is returned if the address is invalid. An ipv4-mapped ipv6 address is
// reversed in the ip6.arpa tree as that is how it was written.
func IPToReverseQName(ip netip.Addr) string {
	if !ip.IsValid() {
		return ""
	}
	if ip.Is4() {
		ip4 := ip.As4()
		return fmt.Sprintf("%d.%d.%d.%d%s", ip4[3], ip4[2], ip4[1], ip4[0], V4Suffix)
	}

	ip6 := ip.As16()
	joiner := make([]string, 0, 32)
	for ix := 15; ix >= 0; ix-- {
		joiner = append(joiner, fmt.Sprintf("%x", ip6[ix]&0xf))
		joiner = append(joiner, fmt.Sprintf("%x", ip6[ix]&0xf0>>4))
	}

	return strings.Join(joiner, ".") + V6Suffix
}
