// This file exists so that "go doc github.com/markdingo/dnsrev" displays something
// useful.

/*
Package dnsrev generates and refreshes reverse DNS zone files from forward zone data. It
supports ipv4 and ipv6 and arbitrary reverse zone layouts, including reverse zones which
are not split on octet or nibble boundaries.

dnsrev is a batch tool intended to be run by cron or by hand after forward zones are
edited. Each configured reverse zone file has an automatically generated section which
dnsrev rewrites with PTRs deduced from the A and AAAA records of the forward zones. All
other content, such as the SOA, NS records and hand-crafted PTRs, is left untouched apart
from the SOA serial which is bumped whenever the generated section changes.

Zone files are parsed by way of named-compilezone, so dnsrev only ever deals with
canonical, fully qualified zone data.

The command is in cmd/dnsrev.
*/
package dnsrev
