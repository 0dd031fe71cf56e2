package main

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/miekg/dns"

	"github.com/markdingo/dnsrev/canon"
	"github.com/markdingo/dnsrev/dnsutil"
	"github.com/markdingo/dnsrev/log"
	"github.com/markdingo/dnsrev/pregen"
	"github.com/markdingo/dnsrev/zonefile"
)

const (
	programName = "dnsrev"

	defaultProjectURL = "HTTPS://github.com/markdingo/dnsrev"
	defaultConfigPath = "dnsrev.conf"
)

// ConfigLoadError is returned for any problem with the configuration file: it cannot be
// read, it is not valid YAML or the content fails validation.
type ConfigLoadError struct {
	Path string
	err  error
}

func (t *ConfigLoadError) Error() string {
	return fmt.Sprintf("Configuration %s: %s", t.Path, t.err.Error())
}

func (t *ConfigLoadError) Unwrap() error {
	return t.err
}

// zoneSpec is a zone as it appears in the configuration file
type zoneSpec struct {
	Zone     string   `yaml:"zone"`
	File     string   `yaml:"file"`
	Prefixes []string `yaml:"prefixes"`
}

// configFile is the on-disk YAML format. Unknown fields are rejected so typos are caught.
type configFile struct {
	Compiler string     `yaml:"compiler"`
	Marker   string     `yaml:"marker"`
	Force    bool       `yaml:"force"`
	Forward  []zoneSpec `yaml:"forward"`
	Reverse  []zoneSpec `yaml:"reverse"`
}

type forwardZone struct {
	zone string // Fully qualified
	path string
}

type reverseZone struct {
	zone     string // Fully qualified
	path     string
	prefixes []netip.Prefix
}

// config holds the command line settings and, once load() has been called, the validated
// contents of the configuration file. It is not changed after load().
type config struct {
	projectURL string

	configPath  string // --config
	dryRun      bool   // --dry-run
	diff        bool   // --diff
	noSOAUpdate bool   // --no-soa-update
	force       bool   // --force or "force: true"

	logMinorFlag bool
	logDebugFlag bool
	quietFlag    bool

	compiler string
	marker   string
	forward  []*forwardZone
	reverse  []*reverseZone
}

func newConfig() *config {
	t := &config{projectURL: defaultProjectURL, configPath: defaultConfigPath}
	info, ok := debug.ReadBuildInfo()
	if ok && len(info.Main.Path) > 0 {
		t.projectURL = info.Main.Path // Override with embedded if present
	}

	return t
}

func (t *config) printVersion() {
	fmt.Fprintf(log.Out(), "Program:     %s %s (%s)\n",
		programName, pregen.Version, pregen.ReleaseDate)
	fmt.Fprintf(log.Out(), "Project:     %s\n", t.projectURL)
}

// load reads and validates the configuration file named by configPath. All errors are
// returned as a *ConfigLoadError.
func (t *config) load() error {
	b, err := os.ReadFile(t.configPath)
	if err != nil {
		return &ConfigLoadError{Path: t.configPath, err: err}
	}

	var cf configFile
	err = yaml.UnmarshalWithOptions(b, &cf, yaml.DisallowUnknownField())
	if err != nil {
		return &ConfigLoadError{Path: t.configPath, err: fmt.Errorf("%s", yaml.FormatError(err, false, true))}
	}

	err = t.apply(&cf, filepath.Dir(t.configPath))
	if err != nil {
		return &ConfigLoadError{Path: t.configPath, err: err}
	}

	return nil
}

// apply validates the configuration file contents and transfers them into t. Relative
// file names are taken as relative to baseDir, the directory holding the configuration
// file.
func (t *config) apply(cf *configFile, baseDir string) error {
	t.compiler = cf.Compiler
	if len(t.compiler) == 0 {
		t.compiler = canon.DefaultCompiler
	}
	t.marker = cf.Marker
	if len(t.marker) == 0 {
		t.marker = zonefile.DefaultMarker
	}
	if strings.ContainsAny(t.marker, "\r\n") {
		return fmt.Errorf("marker cannot contain a newline")
	}
	if !strings.HasPrefix(strings.TrimSpace(t.marker), ";") {
		return fmt.Errorf("marker must be a zone file comment starting with ';'")
	}
	t.force = t.force || cf.Force

	if len(cf.Forward) == 0 {
		return fmt.Errorf("at least one forward zone is required")
	}
	if len(cf.Reverse) == 0 {
		return fmt.Errorf("at least one reverse zone is required")
	}

	paths := make(map[string]string) // Each file may only be named once
	checkPath := func(kind string, ix int, zs zoneSpec) (string, error) {
		if len(zs.File) == 0 {
			return "", fmt.Errorf("%s zone %d: file is required", kind, ix+1)
		}
		p := zs.File
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		if prev, ok := paths[p]; ok {
			return "", fmt.Errorf("%s zone %d: file %s already used by %s", kind, ix+1, zs.File, prev)
		}
		paths[p] = kind + " zone " + fmt.Sprint(ix+1)

		return p, nil
	}

	for ix, zs := range cf.Forward {
		p, err := checkPath("forward", ix, zs)
		if err != nil {
			return err
		}
		if len(zs.Zone) == 0 {
			return fmt.Errorf("forward zone %d: zone is required", ix+1)
		}
		if len(zs.Prefixes) > 0 {
			return fmt.Errorf("forward zone %s: prefixes only apply to reverse zones", zs.Zone)
		}
		t.forward = append(t.forward, &forwardZone{zone: dns.Fqdn(strings.TrimSpace(zs.Zone)), path: p})
	}

	for ix, zs := range cf.Reverse {
		p, err := checkPath("reverse", ix, zs)
		if err != nil {
			return err
		}
		rz, err := newReverseZone(zs, p)
		if err != nil {
			return fmt.Errorf("reverse zone %d: %w", ix+1, err)
		}
		t.reverse = append(t.reverse, rz)
	}

	return nil
}

// newReverseZone validates the prefixes and zone name of a reverse zone. If the zone
// name is absent it is derived from the first prefix. If the zone name is present and
// decodes to an address range, every prefix must overlap that range.
func newReverseZone(zs zoneSpec, path string) (*reverseZone, error) {
	rz := &reverseZone{zone: dns.Fqdn(strings.TrimSpace(zs.Zone)), path: path}
	if len(zs.Prefixes) == 0 {
		return nil, fmt.Errorf("at least one prefix is required")
	}
	for _, s := range zs.Prefixes {
		p, err := dnsutil.ParsePrefix(s)
		if err != nil {
			return nil, err
		}
		rz.prefixes = append(rz.prefixes, p)
	}

	if len(zs.Zone) == 0 {
		zone, err := dnsutil.ReverseZoneName(rz.prefixes[0])
		if err != nil {
			return nil, err
		}
		rz.zone = zone
		return rz, nil
	}

	if !dnsutil.InDomain(rz.zone, dnsutil.V4Suffix) && !dnsutil.InDomain(rz.zone, dnsutil.V6Suffix) {
		return nil, fmt.Errorf("zone %s is not in %s or %s", rz.zone,
			dnsutil.V4Suffix[1:], dnsutil.V6Suffix[1:])
	}

	// RFC2317 style names such as 0/27.113.0.203.in-addr.arpa do not decode and are
	// accepted as-is.
	ip, bits, err := dnsutil.InvertPtrToIP(rz.zone)
	if err != nil {
		return rz, nil
	}
	zoneRange := netip.PrefixFrom(ip, bits)
	for _, p := range rz.prefixes {
		if !zoneRange.Overlaps(p) {
			return nil, fmt.Errorf("prefix %s is outside zone %s", p, rz.zone)
		}
	}

	return rz, nil
}
