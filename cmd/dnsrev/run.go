package main

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/markdingo/dnsrev/canon"
	"github.com/markdingo/dnsrev/database"
	"github.com/markdingo/dnsrev/dnsutil"
	"github.com/markdingo/dnsrev/log"
	"github.com/markdingo/dnsrev/zonefile"
)

// run processes every reverse zone in configuration order. The first error stops the run
// as a partially updated set of reverse zones is worse than none.
func (t *dnsRev) run() error {
	if t.reader == nil {
		r := t.runner
		if r == nil {
			r = canon.NewExecRunner(t.cfg.compiler)
		}
		t.reader = canon.NewReader(r)
	}

	var written int
	for _, rz := range t.cfg.reverse {
		w, err := t.processReverse(rz)
		if err != nil {
			return err
		}
		if w {
			written++
		}
	}
	if t.cfg.dryRun {
		log.Majorf("Dry run: %d of %d reverse zones would be updated", written, len(t.cfg.reverse))
	} else {
		log.Minorf("%d of %d reverse zones updated", written, len(t.cfg.reverse))
	}

	return nil
}

// loadForward reads the address RRs of all forward zones. They are read once and shared
// by all reverse zones.
func (t *dnsRev) loadForward() ([]dns.RR, error) {
	if t.loaded {
		return t.forward, nil
	}
	for _, fz := range t.cfg.forward {
		rrs, err := t.reader.Read(fz.path, fz.zone, dns.TypeA, dns.TypeAAAA)
		if err != nil {
			return nil, err
		}
		log.Minorf("Forward %s: %d address RRs from %s", fz.zone, len(rrs), fz.path)
		t.forward = append(t.forward, rrs...)
	}
	t.loaded = true

	return t.forward, nil
}

// processReverse regenerates a single reverse zone file. Returns true if the file was, or
// in the case of a dry run would have been, written.
func (t *dnsRev) processReverse(rz *reverseZone) (bool, error) {
	zf, err := zonefile.Load(rz.path, rz.zone, t.cfg.marker)
	if err != nil {
		return false, fmt.Errorf("Reverse zone %s: %w", rz.zone, err)
	}

	existing, err := t.reader.Read(rz.path, rz.zone, dns.TypeSOA, dns.TypePTR)
	if err != nil {
		return false, err
	}
	var soa *dns.SOA
	for _, rr := range existing {
		if s, ok := rr.(*dns.SOA); ok {
			soa = s
			break
		}
	}
	if soa == nil {
		return false, fmt.Errorf("Reverse zone %s in %s has no SOA record", rz.zone, rz.path)
	}

	forward, err := t.loadForward()
	if err != nil {
		return false, err
	}

	db := database.NewDatabase(rz.prefixes...)
	manual := manualPTROwners(existing, zf.Sections.Auto)
	for _, owner := range manual {
		db.Exclude(owner)
	}
	for _, rr := range forward {
		db.Add(rr)
	}

	var ptrs []*dns.PTR
	var outside int
	for _, ptr := range db.PTRs() {
		if dnsutil.InDomain(ptr.Hdr.Name, rz.zone) {
			ptrs = append(ptrs, ptr)
		} else {
			outside++
		}
	}
	if outside > 0 {
		log.Majorf("Warning: %s: %d PTRs within prefixes but outside the zone name were skipped",
			rz.zone, outside)
	}
	log.Minorf("Reverse %s: %d PTRs, %d manual owners, %d duplicates, %d not in prefixes",
		rz.zone, len(ptrs), len(manual), db.Duplicates, db.OutOfZone)

	changed := zf.Merge(ptrs)
	if !changed && !t.cfg.force {
		log.Majorf("%s: unchanged", rz.zone)
		return false, nil
	}

	serial := soa.Serial
	if !t.cfg.noSOAUpdate {
		serial, err = zf.UpdateSerial(soa.Serial, t.now())
		if err != nil {
			return false, fmt.Errorf("Reverse zone %s in %s: %w", rz.zone, rz.path, err)
		}
	}

	if t.cfg.diff {
		err = printDiff(log.Out(), zf.Path, zf.Original, zf.Text)
		if err != nil {
			return false, err
		}
	}

	err = zf.Commit(t.cfg.dryRun)
	if err != nil {
		return false, fmt.Errorf("Reverse zone %s: %w", rz.zone, err)
	}

	verb := "updated"
	if t.cfg.dryRun {
		verb = "would be updated"
	}
	log.Majorf("%s: %s with %d PTRs, serial %d -> %d", rz.zone, verb, len(ptrs), soa.Serial, serial)

	return true, nil
}

// manualPTROwners returns the owner names of PTRs in the compiled reverse zone which are
// not in the auto section. These are maintained by hand and take precedence over deduced
// PTRs. Comparisons are on canonical owner and target names as the compiler may have
// changed the case of names.
func manualPTROwners(compiled []dns.RR, auto string) (owners []string) {
	generated := make(map[string]bool)
	for _, s := range strings.Split(auto, "\n") {
		l, ok := canon.ParseLine(s)
		if ok && strings.EqualFold(l.Type, "PTR") {
			generated[ptrKey(l.Owner, l.Rdata)] = true
		}
	}

	seen := make(map[string]bool)
	for _, rr := range compiled {
		ptr, ok := rr.(*dns.PTR)
		if !ok || generated[ptrKey(ptr.Hdr.Name, ptr.Ptr)] {
			continue
		}
		owner := dns.CanonicalName(ptr.Hdr.Name)
		if !seen[owner] {
			seen[owner] = true
			owners = append(owners, owner)
		}
	}

	return
}

func ptrKey(owner, target string) string {
	return dns.CanonicalName(owner) + " " + dns.CanonicalName(target)
}
