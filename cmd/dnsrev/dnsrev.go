package main

import (
	"time"

	"github.com/miekg/dns"

	"github.com/markdingo/dnsrev/canon"
)

// The dnsRev container exists so that most of the "main" functionality can be delegated
// to support functions and help keep the flow of main() nice and clean.
type dnsRev struct {
	cfg *config

	runner canon.Runner // nil means exec cfg.compiler
	reader *canon.Reader
	now    func() time.Time

	startTime time.Time
	forward   []dns.RR // Address RRs from all forward zones, loaded once per run
	loaded    bool
}

func newDNSRev(cfg *config, r canon.Runner) *dnsRev {
	t := &dnsRev{
		cfg:       cfg,
		runner:    r,
		now:       time.Now,
		startTime: time.Now(),
	}
	if t.cfg == nil {
		t.cfg = newConfig()
	}

	return t
}
