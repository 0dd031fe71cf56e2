package main

import (
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/markdingo/dnsrev/canon"
	"github.com/markdingo/dnsrev/dnsutil"
	"github.com/markdingo/dnsrev/log"
	"github.com/markdingo/dnsrev/mock"
	mockCompiler "github.com/markdingo/dnsrev/mock/compiler"
	"github.com/markdingo/dnsrev/zonefile"
)

var testToday = time.Date(2026, time.October, 17, 9, 30, 0, 0, time.Local)

// setupRun copies testdata into a temporary directory and returns a loaded config for it
func setupRun(t *testing.T) (*config, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"dnsrev.conf", "db.example.net", "db.192.0.2", "db.2001.db8"} {
		b, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatal("Setup", err)
		}
		err = os.WriteFile(filepath.Join(dir, name), b, 0644)
		if err != nil {
			t.Fatal("Setup", err)
		}
	}

	cfg := newConfig()
	cfg.configPath = filepath.Join(dir, "dnsrev.conf")
	if err := cfg.load(); err != nil {
		t.Fatal("Setup", err)
	}

	return cfg, dir
}

func newTestRun(cfg *config, mc *mockCompiler.Compiler) *dnsRev {
	dr := newDNSRev(cfg, mc)
	dr.now = func() time.Time { return testToday }

	return dr
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(b)
}

func TestRunEndToEnd(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	log.SetLevel(log.MajorLevel)

	cfg, dir := setupRun(t)
	v4Path := filepath.Join(dir, "db.192.0.2")
	v6Path := filepath.Join(dir, "db.2001.db8")
	v4Before := readFile(t, v4Path)

	mc := &mockCompiler.Compiler{}
	if err := newTestRun(cfg, mc).run(); err != nil {
		t.Fatal("Unexpected error", err)
	}

	m := zonefile.DefaultMarker
	v4 := readFile(t, v4Path)
	expect := v4Before + m + "\n" +
		"10.2.0.192.in-addr.arpa. IN PTR host1.example.net.\n" +
		"10.2.0.192.in-addr.arpa. IN PTR www.example.net.\n" +
		m + "\n"
	expect = strings.Replace(expect, "2024010101 ; serial", "2026101700 ; serial", 1)
	if v4 != expect {
		t.Errorf("ipv4 reverse wrong. Got:\n%s\nExpected:\n%s", v4, expect)
	}

	v6 := readFile(t, v6Path)
	owner := dnsutil.IPToReverseQName(netip.MustParseAddr("2001:db8::10"))
	if !strings.Contains(v6, m+"\n"+owner+" IN PTR host1.example.net.\n"+m+"\n") {
		t.Error("ipv6 PTR missing from auto section", v6)
	}
	if !strings.Contains(v6, "hostmaster.example.net. 2026101701 3600") {
		t.Error("Same day serial not incremented", v6)
	}
	if !strings.HasSuffix(v6, m+"\n\n; Trailing manual content\n") {
		t.Error("Suffix not preserved", v6)
	}
	if strings.Contains(v6, "ffff") {
		t.Error("Address outside prefix included", v6)
	}

	// Forward zone is compiled once and shared by both reverse zones
	var forwardCalls int
	for _, c := range mc.Calls {
		if strings.HasPrefix(c, "example.net.:") {
			forwardCalls++
		}
	}
	if forwardCalls != 1 {
		t.Error("Forward zone compiled", forwardCalls, "times", mc.Calls)
	}

	// Second run with no forward change must leave everything untouched
	out.Reset()
	if err := newTestRun(cfg, &mockCompiler.Compiler{}).run(); err != nil {
		t.Fatal("Unexpected error on second run", err)
	}
	if readFile(t, v4Path) != v4 || readFile(t, v6Path) != v6 {
		t.Error("Second run modified zone files")
	}
	if strings.Count(out.String(), "unchanged") != 2 {
		t.Error("Expected two unchanged reports", out.String())
	}
}

func TestRunDryRunWithDiff(t *testing.T) {
	out := &mock.IOWriter{}
	log.SetOut(out)
	log.SetLevel(log.MajorLevel)

	cfg, dir := setupRun(t)
	cfg.dryRun = true
	cfg.diff = true
	v4Path := filepath.Join(dir, "db.192.0.2")
	before := readFile(t, v4Path)

	if err := newTestRun(cfg, &mockCompiler.Compiler{}).run(); err != nil {
		t.Fatal("Unexpected error", err)
	}
	if readFile(t, v4Path) != before {
		t.Error("Dry run modified", v4Path)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 4 {
		t.Error("Dry run left files behind", entries)
	}

	got := out.String()
	for _, s := range []string{
		"--- " + v4Path,
		"+++ " + v4Path + " (new)",
		"-\t\t2024010101 ; serial",
		"+\t\t2026101700 ; serial",
		"+10.2.0.192.in-addr.arpa. IN PTR host1.example.net.",
		"would be updated",
		"Dry run: 2 of 2",
	} {
		if !strings.Contains(got, s) {
			t.Error("Output missing", s, "\n", got)
		}
	}
}

func TestRunForceAndNoSOAUpdate(t *testing.T) {
	log.SetOut(&mock.IOWriter{})
	cfg, dir := setupRun(t)
	v4Path := filepath.Join(dir, "db.192.0.2")

	cfg.noSOAUpdate = true
	if err := newTestRun(cfg, &mockCompiler.Compiler{}).run(); err != nil {
		t.Fatal(err)
	}
	v4 := readFile(t, v4Path)
	if !strings.Contains(v4, "2024010101 ; serial") {
		t.Error("--no-soa-update still changed the serial", v4)
	}
	if !strings.Contains(v4, "IN PTR host1.example.net.") {
		t.Error("--no-soa-update suppressed PTR generation", v4)
	}

	cfg.noSOAUpdate = false
	cfg.force = true
	if err := newTestRun(cfg, &mockCompiler.Compiler{}).run(); err != nil {
		t.Fatal(err)
	}
	v4 = readFile(t, v4Path)
	if !strings.Contains(v4, "2026101700 ; serial") {
		t.Error("--force did not bump serial", v4)
	}
	if err := newTestRun(cfg, &mockCompiler.Compiler{}).run(); err != nil {
		t.Fatal(err)
	}
	v4 = readFile(t, v4Path)
	if !strings.Contains(v4, "2026101701 ; serial") {
		t.Error("--force did not bump serial on second run", v4)
	}
}

func TestRunCompileFailure(t *testing.T) {
	log.SetOut(&mock.IOWriter{})
	cfg, dir := setupRun(t)
	v4Path := filepath.Join(dir, "db.192.0.2")
	before := readFile(t, v4Path)

	mc := &mockCompiler.Compiler{
		Fail: map[string]string{"example.net.": "db.example.net:7: bad dotted quad\n"},
	}
	err := newTestRun(cfg, mc).run()
	if err == nil {
		t.Fatal("Expected error")
	}
	var zce *canon.ZoneCompileError
	if !errors.As(err, &zce) {
		t.Fatal("Wrong error type", err)
	}
	if !strings.Contains(err.Error(), "bad dotted quad") || !strings.Contains(err.Error(), "example.net.") {
		t.Error("Error lacks context", err)
	}
	if readFile(t, v4Path) != before {
		t.Error("Failed run modified", v4Path)
	}
}

func TestRunMissingSOA(t *testing.T) {
	log.SetOut(&mock.IOWriter{})
	cfg, dir := setupRun(t)
	v4Path := filepath.Join(dir, "db.192.0.2")
	err := os.WriteFile(v4Path, []byte("$ORIGIN 2.0.192.in-addr.arpa.\n1 3600 IN PTR a.example.\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	err = newTestRun(cfg, &mockCompiler.Compiler{}).run()
	if err == nil || !strings.Contains(err.Error(), "no SOA") {
		t.Error("Expected no SOA error, not", err)
	}
}

func TestManualPTROwners(t *testing.T) {
	compiled, err := canon.Parse("2.0.192.in-addr.arpa.", "x", []byte(
		"1.2.0.192.in-addr.arpa. 3600 IN PTR ns1.example.net.\n"+
			"10.2.0.192.in-addr.arpa. 3600 IN PTR host1.example.net.\n"+
			"10.2.0.192.in-addr.arpa. 3600 IN PTR other.example.net.\n"+
			"11.2.0.192.in-addr.arpa. 3600 IN PTR HOST2.example.net.\n"))
	if err != nil {
		t.Fatal(err)
	}
	auto := "10.2.0.192.in-addr.arpa. IN PTR host1.example.net.\n" +
		"11.2.0.192.IN-ADDR.ARPA. IN PTR host2.example.net.\n"

	owners := manualPTROwners(compiled, auto)
	expect := []string{"1.2.0.192.in-addr.arpa.", "10.2.0.192.in-addr.arpa."}
	if len(owners) != len(expect) {
		t.Fatal("Wrong owners", owners)
	}
	for ix, o := range expect {
		if owners[ix] != o {
			t.Error(ix, "Got", owners[ix], "Expected", o)
		}
	}
}
