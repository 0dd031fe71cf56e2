package database

import (
	"net/netip"
	"sort"

	"github.com/miekg/dns"

	"github.com/markdingo/dnsrev/dnsutil"
)

// Database is constructed with NewDatabase() and populated with Add()
type Database struct {
	prefixes []netip.Prefix
	ptrMap   map[string]map[string]*dns.PTR // canonical owner -> canonical target -> PTR
	excluded map[string]bool                // canonical owners
	Stats
}

// Stats counts the disposition of every RR offered to Add()
type Stats struct {
	Added      int // PTRs deduced and kept
	Duplicates int // Owner/target pairs already present
	OutOfZone  int // Addresses not covered by any prefix
	Ignored    int // Non-address RRs
}

func NewDatabase(prefixes ...netip.Prefix) *Database {
	return &Database{
		prefixes: prefixes,
		ptrMap:   make(map[string]map[string]*dns.PTR),
		excluded: make(map[string]bool),
	}
}

// Exclude prevents any PTR with the owner name from being returned by PTRs(). This is how
// manually maintained PTRs take precedence over deduced ones. Exclude can be called before
// or after the relevant Add() calls.
func (t *Database) Exclude(owner string) {
	t.excluded[dns.CanonicalName(owner)] = true
}

// Covers returns true if ip is within one of the database prefixes
func (t *Database) Covers(ip netip.Addr) bool {
	for _, p := range t.prefixes {
		if p.Contains(ip) {
			return true
		}
	}

	return false
}

// Add converts an address RR into a PTR and adds it into the database if the address is
// covered by one of the database prefixes. Returns true if the PTR was added.
func (t *Database) Add(rr dns.RR) bool {
	ptr, ip := dnsutil.DeducePtr(rr)
	if ptr == nil {
		t.Ignored++
		return false
	}
	if !t.Covers(ip) {
		t.OutOfZone++
		return false
	}

	owner := dns.CanonicalName(ptr.Hdr.Name)
	target := dns.CanonicalName(ptr.Ptr)
	pmap := t.ptrMap[owner]
	if pmap == nil {
		pmap = make(map[string]*dns.PTR)
		t.ptrMap[owner] = pmap
	}
	if _, ok := pmap[target]; ok {
		t.Duplicates++
		return false
	}
	pmap[target] = ptr
	t.Added++

	return true
}

// Count returns the total count of PTRs which PTRs() would return
func (t *Database) Count() (c int) {
	for owner, pmap := range t.ptrMap {
		if !t.excluded[owner] {
			c += len(pmap)
		}
	}

	return
}

// PTRs returns all non-excluded PTRs sorted by canonical owner name then by canonical
// target name. The order is stable across runs so that regenerated zones only differ
// when the data differs.
func (t *Database) PTRs() []*dns.PTR {
	owners := make([]string, 0, len(t.ptrMap))
	for owner := range t.ptrMap {
		if !t.excluded[owner] {
			owners = append(owners, owner)
		}
	}
	sort.Strings(owners)

	ar := make([]*dns.PTR, 0, len(owners))
	for _, owner := range owners {
		pmap := t.ptrMap[owner]
		targets := make([]string, 0, len(pmap))
		for target := range pmap {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		for _, target := range targets {
			ar = append(ar, pmap[target])
		}
	}

	return ar
}

// Build is a convenience function which creates a database from the prefixes, adds all
// the forward RRs and returns the resulting PTRs.
func Build(forward []dns.RR, prefixes []netip.Prefix) []*dns.PTR {
	db := NewDatabase(prefixes...)
	for _, rr := range forward {
		db.Add(rr)
	}

	return db.PTRs()
}
