package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type logLevel int

const (
	SilentLevel logLevel = iota
	MajorLevel
	MinorLevel
	DebugLevel
)

var (
	majorPrefix = ""
	minorPrefix = "  "
	debugPrefix = "   Dbg:"
	errorPrefix = "Error: "

	out    io.Writer
	errOut io.Writer
	level  logLevel
)

func init() {
	out = os.Stdout
	errOut = os.Stderr
	level = MajorLevel
}

func (t logLevel) String() string {
	switch t {
	case MajorLevel:
		return "Major"
	case MinorLevel:
		return "Minor"
	case DebugLevel:
		return "Debug"
	}

	return "Silent"
}

// SetOut changes the output of logging to the supplied io.Writer. The default is
// os.Stdout. The supplied io.Writer must never be nil.
func SetOut(w io.Writer) {
	if w == nil {
		panic("log.SetOut() called with a nil io.Writer")
	}
	out = w
}

// Out returns the current io.Writer for specialist output which is not controlled by
// log levels, such as diffs. The return value will never be nil.
func Out() io.Writer {
	return out
}

// SetErr changes the error stream. The default is os.Stderr. The supplied io.Writer must
// never be nil.
func SetErr(w io.Writer) {
	if w == nil {
		panic("log.SetErr() called with a nil io.Writer")
	}
	errOut = w
}

// Err returns the current error stream. The return value will never be nil.
func Err() io.Writer {
	return errOut
}

// SetLevel sets the current logging level.
func SetLevel(l logLevel) {
	level = l
}

// Level returns current level
func Level() logLevel {
	return level
}

// IfMajor returns true if Major logging is written to the output stream. Callers can use
// the If* functions when evaluating the log arguments is expensive.
func IfMajor() bool {
	return level >= MajorLevel
}

func IfMinor() bool {
	return level >= MinorLevel
}

func IfDebug() bool {
	return level >= DebugLevel
}

// Majorf provides an approximate fmt.Printf equivalent interface to logging. Output is
// only generated if the level is >= Major. A newline is always added to the end of the
// output so the caller should not have that in their string.
func Majorf(format string, a ...interface{}) (n int, err error) {
	if level >= MajorLevel {
		return prefixAndPrintLines(out, fmt.Sprintf(format, a...), majorPrefix, majorPrefix)
	}

	return 0, nil
}

// Major provides a fmt.Print like interface to logging. Output is only generated if the
// level is >= Major. Major uses fmt.Sprint to generate the output line thus it inherits
// the feature whereby spaces are added between operands when neither is a string.
func Major(a ...interface{}) (n int, err error) {
	if level >= MajorLevel {
		return prefixAndPrintLines(out, fmt.Sprint(a...), majorPrefix, majorPrefix)
	}

	return 0, nil
}

// Minorf provides a fmt.Printf equivalent interface to logging. Output is only generated
// if the level is >= Minor.
func Minorf(format string, a ...interface{}) (n int, err error) {
	if level >= MinorLevel {
		return prefixAndPrintLines(out, fmt.Sprintf(format, a...), minorPrefix, minorPrefix)
	}

	return 0, nil
}

func Minor(a ...interface{}) (n int, err error) {
	if level >= MinorLevel {
		return prefixAndPrintLines(out, fmt.Sprint(a...), minorPrefix, minorPrefix)
	}

	return 0, nil
}

// Debugf provides a fmt.Printf equivalent interface to logging. Output is only generated
// if the level is >= Debug.
func Debugf(format string, a ...interface{}) (n int, err error) {
	if level >= DebugLevel {
		return prefixAndPrintLines(out, fmt.Sprintf(format, a...), debugPrefix, debugPrefix)
	}

	return 0, nil
}

func Debug(a ...interface{}) (n int, err error) {
	if level >= DebugLevel {
		return prefixAndPrintLines(out, fmt.Sprint(a...), debugPrefix, debugPrefix)
	}

	return 0, nil
}

// Errorf writes to the error stream regardless of level. Continuation lines, such as
// canonicalizer error text, are indented under the "Error: " prefix.
func Errorf(format string, a ...interface{}) (n int, err error) {
	return prefixAndPrintLines(errOut, fmt.Sprintf(format, a...), errorPrefix, "       ")
}

// prefixAndPrintLines is the common handler which takes potentially multiple lines and
// sends them to w. The first line is prefixed with first and all subsequent lines with
// rest.
func prefixAndPrintLines(w io.Writer, lines, first, rest string) (int, error) {
	ar := strings.Split(lines, "\n")

	for len(ar) > 1 && len(ar[len(ar)-1]) == 0 { // Chomp trailing empty lines
		ar = ar[:len(ar)-1]
	}

	s := strings.Join(ar, "\n"+rest) // Line1 \nrest Line2 \nrest Line3

	return fmt.Fprint(w, first, s, "\n")
}
