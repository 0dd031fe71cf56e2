package main

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/markdingo/dnsrev/log"
)

type parseResult int // This is a ternary variable
const (
	parseStop     parseResult = iota // No error, but don't continue
	parseContinue                    // No errors and continue
	parseFailed                      // Errors, do not continue
)

// parseOptions transfers command line options into the config. The configuration file
// itself is not read here; that is deferred to config.load() so that --help and
// --version work without one.
//
// As with most flags packages, pflag silently accepts duplicate options with the last
// one winning. All dnsrev options are single-valued so duplicates are rejected as they
// almost certainly indicate a mistake.
func (t *dnsRev) parseOptions(args []string) parseResult {
	var helpFlag, versionFlag bool

	name := programName
	if len(args) > 0 {
		name = args[0]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Consider '-h' for command-line usage")
	}

	fs.SetOutput(log.Err())

	// Non-config flags

	fs.BoolVarP(&helpFlag, "help", "h", false, "Print command-line usage")
	fs.BoolVarP(&versionFlag, "version", "v", false, "Print version and origin URL")

	// config flags

	fs.StringVarP(&t.cfg.configPath, "config", "c", defaultConfigPath,
		"Configuration file location")
	fs.BoolVarP(&t.cfg.dryRun, "dry-run", "n", false,
		`Compute all changes but do not write any zone files. Combine
with --diff to see what would change.`)
	fs.BoolVarP(&t.cfg.diff, "diff", "d", false, "Print a unified diff of each changed zone file")
	fs.BoolVarP(&t.cfg.noSOAUpdate, "no-soa-update", "s", false,
		"Do not update the SOA serial of changed zone files")
	fs.BoolVarP(&t.cfg.force, "force", "f", false,
		`Rewrite every reverse zone file and bump its SOA serial even if
the generated PTRs have not changed.`)

	fs.BoolVarP(&t.cfg.quietFlag, "quiet", "q", false, "Only print errors")
	fs.BoolVar(&t.cfg.logMinorFlag, "log-minor", false, "Log per-zone record counts to Stdout")
	fs.BoolVar(&t.cfg.logDebugFlag, "log-debug", false,
		"Log debug events to Stdout - this implies --log-minor")

	if len(args) > 0 {
		args = args[1:]
	}
	seen := make(map[string]bool)
	err := fs.ParseAll(args,
		func(f *flag.Flag, v string) error {
			if seen[f.Name] && f.Name != "help" && f.Name != "version" {
				return fmt.Errorf("Duplicate option '--%v %v' not allowed", f.Name, v)
			}
			seen[f.Name] = true
			return fs.Set(f.Name, v)
		})

	if err != nil {
		fmt.Fprintln(log.Err(), "Error:", err.Error())
		return parseFailed
	}

	if helpFlag {
		printUsage(fs)
		fmt.Fprintln(log.Out())
		t.cfg.printVersion()
		return parseStop
	}

	if versionFlag {
		t.cfg.printVersion()
		return parseStop
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(log.Err(), "Error: Unexpected goop on command line: '%s'\n",
			strings.Join(fs.Args(), " "))
		return parseFailed
	}

	return parseContinue
}

func printUsage(fs *flag.FlagSet) {
	o := log.Out()
	fmt.Fprintln(o, "NAME")
	fmt.Fprintln(o, " ", programName, "-- generate and refresh reverse DNS zone files")
	fmt.Fprintln(o)
	fmt.Fprintln(o, "SYNOPSIS")
	fmt.Fprintln(o, "     dnsrev -h | --help | -v | --version")
	fmt.Fprintln(o, `     dnsrev [-c|--config path] [-n|--dry-run] [-d|--diff] [-s|--no-soa-update]
            [-f|--force] [-q|--quiet] [--log-minor] [--log-debug]`)
	fmt.Fprint(o, `
DESCRIPTION
     dnsrev deduces PTR records from the A and AAAA records of forward zones and
     writes them into the automatically generated section of reverse zone
     files. Everything outside that section is left untouched apart from the
     SOA serial which is bumped whenever the generated PTRs change.

     Zone files are read via named-compilezone so any zone file named can
     load is acceptable input.

     The configuration file is YAML, e.g.:

           forward:
             - zone: example.net
               file: db.example.net
           reverse:
             - file: db.192.0.2
               prefixes: [ 192.0.2.0/24 ]
             - file: db.2001.db8
               zone: 8.b.d.0.1.0.0.2.ip6.arpa
               prefixes: [ 2001:db8::/48, 2001:db8:1::/48 ]

     Optional top-level settings are 'compiler' (default /usr/sbin/named-compilezone),
     'marker' (the comment line delimiting the generated section) and 'force'.
`)
	fmt.Fprintln(o)
	fmt.Fprintln(o, "OPTIONS")
	op := fs.Output() // Save and restore
	fs.SetOutput(o)
	fs.PrintDefaults()
	fs.SetOutput(op)

	fmt.Fprint(o, `
EXIT STATUS
     0 on success. 1 if the configuration is invalid, a zone cannot be compiled or a
     zone file cannot be written.
`)
}
