/*
Package zonefile regenerates the automatically maintained part of a reverse zone file.

A reverse zone file consists of manually maintained content, typically the SOA, NS and any
hand-crafted PTRs, plus an auto section bracketed by two identical marker lines:

	$TTL 3600
	@	IN	SOA	ns1.example.net. hostmaster.example.net. ( 2024010101 ... )
	...
	;; ---- dnsrev ---- automatically generated, do not edit ---- dnsrev ----
	10.2.0.192.in-addr.arpa. IN PTR host1.example.net.
	;; ---- dnsrev ---- automatically generated, do not edit ---- dnsrev ----
	...

Everything up to and including the first marker line is the prefix and everything from
the last marker line onwards is the suffix. Neither is ever modified apart from the SOA
serial. A file with no marker has the auto section appended.

Merge replaces the auto section, NextSerial and ReplaceSerial bump the SOA serial and
Commit atomically replaces the file via a temporary file in the same directory.
*/
package zonefile
