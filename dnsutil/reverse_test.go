package dnsutil_test

import (
	"errors"
	"net/netip"
	"strings"
	"testing"

	"github.com/markdingo/dnsrev/dnsutil"
)

func TestReverseLabelSuffix(t *testing.T) {
	testCases := []struct {
		addr   string
		bits   int
		expect string
	}{
		{"192.0.2.1", 32, "1.2.0.192.in-addr.arpa."},
		{"192.0.2.1", 24, "2.0.192.in-addr.arpa."},
		{"192.0.2.1", 16, "0.192.in-addr.arpa."},
		{"192.0.2.1", 8, "192.in-addr.arpa."},
		{"192.0.2.1", 0, "in-addr.arpa."},

		// Boundaries which fall mid-label keep the enclosing label
		{"203.0.113.1", 27, "1.113.0.203.in-addr.arpa."},
		{"203.0.113.1", 25, "1.113.0.203.in-addr.arpa."},
		{"203.0.113.1", 23, "113.0.203.in-addr.arpa."},
		{"10.1.2.3", 12, "1.10.in-addr.arpa."},

		{"2001:db8::1", 128,
			"1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa."},
		{"2001:db8::1", 64, "0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa."},
		{"2001:db8::1", 48, "0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa."},
		{"2001:db8::1", 32, "8.b.d.0.1.0.0.2.ip6.arpa."},
		{"2001:db8::1", 63, "0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa."},
		{"2001:db8::1", 61, "0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa."},
		{"2001:db8::1", 60, "0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa."},
		{"2001:db8::1", 0, "ip6.arpa."},
	}

	for ix, tc := range testCases {
		got, err := dnsutil.ReverseLabelSuffix(tc.addr, tc.bits)
		if err != nil {
			t.Error(ix, "Unexpected error", tc.addr, tc.bits, err)
			continue
		}
		if got != tc.expect {
			t.Error(ix, "Mismatch", tc.addr, tc.bits, "Got", got, "Expected", tc.expect)
		}
	}
}

// Octet-aligned prefixes must drop exactly (32-bits)/8 labels from the full name
func TestReverseLabelSuffixOctetAligned(t *testing.T) {
	for _, addr := range []string{"0.0.0.0", "192.0.2.10", "255.255.255.255", "10.20.30.40"} {
		full := dnsutil.IPToReverseQName(netip.MustParseAddr(addr))
		labels := strings.Split(full, ".")
		for _, bits := range []int{8, 16, 24, 32} {
			got, err := dnsutil.ReverseLabelSuffix(addr, bits)
			if err != nil {
				t.Fatal(addr, bits, err)
			}
			expect := strings.Join(labels[(32-bits)/8:], ".")
			if got != expect {
				t.Error(addr, bits, "Got", got, "Expected", expect)
			}
		}
	}
}

func TestReverseLabelSuffixErrors(t *testing.T) {
	testCases := []struct {
		addr     string
		bits     int
		contains string
	}{
		{"192.0.2.1", 33, "not in range 0-32"},
		{"192.0.2.1", -1, "not in range"},
		{"2001:db8::1", 129, "not in range 0-128"},
		{"192.0.2", 24, "Invalid address"},
		{"host.example.net", 24, "Invalid address"},
		{"", 24, "Invalid address"},
		{"fe80::1%eth0", 64, "zoned"},
	}

	for ix, tc := range testCases {
		_, err := dnsutil.ReverseLabelSuffix(tc.addr, tc.bits)
		if err == nil {
			t.Error(ix, "Expected error with", tc.addr, tc.bits)
			continue
		}
		var iae *dnsutil.InvalidAddressError
		if !errors.As(err, &iae) {
			t.Error(ix, "Wrong error type", err)
		}
		if !strings.Contains(err.Error(), tc.contains) {
			t.Error(ix, "Error", err, "does not contain", tc.contains)
		}
	}
}

func TestReverseCIDRSuffix(t *testing.T) {
	testCases := []struct{ cidr, expect, contains string }{
		{"192.0.2.0/24", "2.0.192.in-addr.arpa.", ""},
		{"192.0.2.10", "10.2.0.192.in-addr.arpa.", ""},
		{"2001:db8::/32", "8.b.d.0.1.0.0.2.ip6.arpa.", ""},
		{"192.0.2.0/x", "", "malformed prefix length"},
		{"bogus/24", "", "Invalid address"},
		{"bogus", "", "Invalid address"},
	}

	for ix, tc := range testCases {
		got, err := dnsutil.ReverseCIDRSuffix(tc.cidr)
		if err != nil {
			if len(tc.contains) == 0 {
				t.Error(ix, "Unexpected error", err)
			} else if !strings.Contains(err.Error(), tc.contains) {
				t.Error(ix, "Wrong error", err, "expected", tc.contains)
			}
			continue
		}
		if len(tc.contains) > 0 {
			t.Error(ix, "Expected error containing", tc.contains)
			continue
		}
		if got != tc.expect {
			t.Error(ix, "Got", got, "Expected", tc.expect)
		}
	}
}

func TestReverseZoneName(t *testing.T) {
	p, err := dnsutil.ParsePrefix("192.0.2.77/24") // Host bits are masked off
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "192.0.2.0/24" {
		t.Error("ParsePrefix did not mask", p)
	}
	zone, err := dnsutil.ReverseZoneName(p)
	if err != nil {
		t.Fatal(err)
	}
	if zone != "2.0.192.in-addr.arpa." {
		t.Error("Wrong zone name", zone)
	}

	_, err = dnsutil.ReverseZoneName(netip.Prefix{})
	if err == nil {
		t.Error("Expected error from zero prefix")
	}

	_, err = dnsutil.ParsePrefix("192.0.2.0/33")
	var iae *dnsutil.InvalidAddressError
	if !errors.As(err, &iae) {
		t.Error("Expected InvalidAddressError, not", err)
	}
}
