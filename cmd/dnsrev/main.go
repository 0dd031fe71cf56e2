package main

import (
	"os"
	"strings"
	"time"

	"github.com/markdingo/dnsrev/log"
	"github.com/markdingo/dnsrev/pregen"
)

func reportError(err error, messages ...string) {
	msg := strings.Join(messages, " ")
	if err != nil {
		if len(msg) > 0 {
			msg += ": "
		}
		msg += err.Error()
	}
	log.Errorf("%s", msg)
}

func fatal(err error, messages ...string) {
	reportError(err, messages...)
	os.Exit(1)
}

//////////////////////////////////////////////////////////////////////

func main() {
	dr := newDNSRev(nil, nil)
	switch dr.parseOptions(os.Args) {
	case parseStop:
		return
	case parseFailed:
		os.Exit(1)
	case parseContinue:
	}

	// Transfer logging options to the log package

	if dr.cfg.logMinorFlag {
		log.SetLevel(log.MinorLevel)
	}
	if dr.cfg.logDebugFlag {
		log.SetLevel(log.DebugLevel)
	}
	if dr.cfg.quietFlag {
		log.SetLevel(log.SilentLevel)
	}

	log.Debug(programName, " ", pregen.Version, " Starting with Log Level: ", log.Level())

	err := dr.cfg.load()
	if err != nil {
		fatal(err)
	}

	err = dr.run()
	if err != nil {
		fatal(err)
	}

	log.Minor(programName, " ", pregen.Version, " completed in ",
		time.Since(dr.startTime).Round(time.Millisecond))
}
