package dnsutil

import (
	"net"
	"net/netip"

	"github.com/miekg/dns"
)

// DeducePtr converts a dns.A/AAAA RR into a dns.PTR. If the wrong type of RR is supplied
// a nil value is returned. The returned address is the one extracted from the RR so
// callers can decide whether the PTR belongs in a particular reverse zone.
//
// The PTR takes its class and TTL from the address RR.
func DeducePtr(rr dns.RR) (*dns.PTR, netip.Addr) {
	var ip netip.Addr
	switch rrt := rr.(type) {
	case *dns.A:
		ip = fromNetIP(rrt.A).Unmap()
	case *dns.AAAA:
		ip = fromNetIP(rrt.AAAA)
	default:
		return nil, ip
	}
	if !ip.IsValid() {
		return nil, ip
	}

	hdr := rr.Header()
	ptr := &dns.PTR{Ptr: hdr.Name}
	ptr.Hdr.Name = IPToReverseQName(ip)
	ptr.Hdr.Rrtype = dns.TypePTR
	ptr.Hdr.Class = hdr.Class
	ptr.Hdr.Ttl = hdr.Ttl

	return ptr, ip
}

func fromNetIP(ip net.IP) netip.Addr {
	a, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}
	}

	return a
}
