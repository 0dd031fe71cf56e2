package canon

import (
	"bytes"
	"os/exec"

	"github.com/markdingo/dnsrev/log"
)

// DefaultCompiler is the canonicalizer shipped with bind9utils on most systems.
const DefaultCompiler = "/usr/sbin/named-compilezone"

// Runner invokes a canonicalizer on a zone file. stdout contains the canonical zone text
// and stderr contains human-readable diagnostics. A non-nil error means the canonical
// output cannot be trusted.
type Runner interface {
	Run(zone, path string) (stdout, stderr []byte, err error)
}

// ExecRunner runs a named-compilezone compatible program as a subprocess and waits for it
// to complete.
type ExecRunner struct {
	Compiler string
}

// NewExecRunner returns a Runner for the supplied program. An empty string means
// DefaultCompiler.
func NewExecRunner(compiler string) *ExecRunner {
	if len(compiler) == 0 {
		compiler = DefaultCompiler
	}

	return &ExecRunner{Compiler: compiler}
}

func (t *ExecRunner) Run(zone, path string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(t.Compiler, "-o", "-", zone, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	log.Debug("exec: ", cmd.String())
	err := cmd.Run()

	return stdout.Bytes(), stderr.Bytes(), err
}
