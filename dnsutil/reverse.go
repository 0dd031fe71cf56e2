package dnsutil

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// InvalidAddressError is returned when an address or prefix length cannot be
// interpreted. It always indicates bad input data, typically configuration.
type InvalidAddressError struct {
	Input  string
	Reason string
	err    error
}

func (t *InvalidAddressError) Error() string {
	msg := fmt.Sprintf("Invalid address '%s'", t.Input)
	if len(t.Reason) > 0 {
		msg += ": " + t.Reason
	}
	if t.err != nil {
		msg += ": " + t.err.Error()
	}

	return msg
}

func (t *InvalidAddressError) Unwrap() error {
	return t.err
}

// ReverseLabelSuffix returns the reverse name of the address truncated at the label
// boundary enclosing prefixLength. The number of leading labels dropped from the full
// reverse name is (familyBits - prefixLength) / bitsPerLabel using integer division, so
// a boundary which falls mid-label keeps that label. E.g.:
//
//	192.0.2.1/24    -> 2.0.192.in-addr.arpa.
//	203.0.113.1/27  -> 1.113.0.203.in-addr.arpa.
//	2001:db8::1/64  -> 0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa.
//
// The address family is derived from the syntax of address; an ipv4-mapped ipv6 address
// stays in the ipv6 family.
func ReverseLabelSuffix(address string, prefixLength int) (string, error) {
	ip, err := netip.ParseAddr(address)
	if err != nil {
		return "", &InvalidAddressError{Input: address, err: err}
	}
	if ip.Zone() != "" {
		return "", &InvalidAddressError{Input: address, Reason: "zoned addresses have no reverse name"}
	}

	familyBits, labelBits := V6Bits, V6LabelBits
	if ip.Is4() {
		familyBits, labelBits = V4Bits, V4LabelBits
	}
	if prefixLength < 0 || prefixLength > familyBits {
		return "", &InvalidAddressError{Input: address,
			Reason: fmt.Sprintf("prefix length %d not in range 0-%d", prefixLength, familyBits)}
	}

	full := IPToReverseQName(ip)
	drop := (familyBits - prefixLength) / labelBits
	labels := strings.SplitN(full, ".", drop+1)

	return labels[len(labels)-1], nil
}

// ReverseCIDRSuffix is ReverseLabelSuffix for "address/length" strings. A bare address
// implies a host-length prefix.
func ReverseCIDRSuffix(cidr string) (string, error) {
	addr, lenStr, found := strings.Cut(cidr, "/")
	if !found {
		ip, err := netip.ParseAddr(addr)
		if err != nil {
			return "", &InvalidAddressError{Input: cidr, err: err}
		}
		return ReverseLabelSuffix(addr, ip.BitLen())
	}

	bits, err := strconv.Atoi(lenStr)
	if err != nil {
		return "", &InvalidAddressError{Input: cidr, Reason: "malformed prefix length", err: err}
	}

	return ReverseLabelSuffix(addr, bits)
}

// ReverseZoneName returns the name of the reverse zone which holds the PTRs for the
// supplied prefix.
func ReverseZoneName(prefix netip.Prefix) (string, error) {
	if !prefix.IsValid() {
		return "", &InvalidAddressError{Input: prefix.String(), Reason: "invalid prefix"}
	}

	return ReverseLabelSuffix(prefix.Addr().String(), prefix.Bits())
}

// ParsePrefix parses a CIDR string and returns an InvalidAddressError on failure. The
// address is masked so "192.0.2.1/24" and "192.0.2.0/24" are the same prefix.
func ParsePrefix(cidr string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(cidr)
	if err != nil {
		return netip.Prefix{}, &InvalidAddressError{Input: cidr, err: err}
	}
	return p.Masked(), nil
}
