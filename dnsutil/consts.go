package dnsutil

const (
	V4Suffix = ".in-addr.arpa." // The leading '.' is important here as some callers
	V6Suffix = ".ip6.arpa."     // rely on strings.HasSuffix() to label match.

	// Address widths and the number of address bits represented by each label of the
	// corresponding reverse tree. in-addr.arpa uses one decimal octet per label and
	// ip6.arpa uses one hex nibble per label.
	V4Bits      = 32
	V4LabelBits = 8
	V6Bits      = 128
	V6LabelBits = 4
)
