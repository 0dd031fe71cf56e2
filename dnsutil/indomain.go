package dnsutil

import (
	"strings"

	"github.com/miekg/dns"
)

// InDomain returns true if the purported sub-domain is in-domain of the parent
// domain. Comparisons are case-insensitive and neither name needs to be fully
// qualified. The parent may have a leading "." as is common in suffix constants.
func InDomain(sub, parent string) bool {
	parent = strings.TrimPrefix(parent, ".")
	if len(parent) == 0 || parent == "." { // Root?
		return true
	}

	return dns.IsSubDomain(dns.Fqdn(parent), dns.Fqdn(sub))
}
