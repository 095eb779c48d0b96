// Package diag carries diagnostics produced while parsing and
// validating genealogy sources. A Collector accumulates them so that
// lenient parsing can surface every problem at once; strict callers
// stop at the first diagnostic at or above SeverityError.
package diag

import (
	"fmt"
	"strings"
)

// Severity ranks how bad a diagnostic is.
type Severity int

const (
	// SeverityWarning marks a problem parsing recovered from.
	SeverityWarning Severity = iota
	// SeverityError marks invalid input that lenient parsing tolerates.
	SeverityError
	// SeverityCritical marks input no mode can continue past.
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}

// Diagnostic is a single problem tied to a source location. Line and
// Column are 1-based; zero means unknown.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	Column   int
	Context  string
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", d.Line)
	}
	b.WriteString(d.Message)
	if d.Context != "" {
		fmt.Fprintf(&b, " (%s)", d.Context)
	}
	return b.String()
}

func Warningf(line int, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Line: line, Message: fmt.Sprintf(format, args...)}
}

func Errorf(line int, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Line: line, Message: fmt.Sprintf(format, args...)}
}

func Criticalf(line int, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityCritical, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Collector accumulates diagnostics. In strict mode Add returns the
// diagnostic as an error as soon as its severity reaches
// SeverityError, which the caller propagates to abort parsing.
type Collector struct {
	diagnostics []Diagnostic
	strict      bool
}

func NewCollector(strict bool) *Collector {
	return &Collector{strict: strict}
}

func (c *Collector) Strict() bool { return c.strict }

// Add records a diagnostic. The returned error is non-nil only in
// strict mode for severities at or above SeverityError.
func (c *Collector) Add(d Diagnostic) error {
	c.diagnostics = append(c.diagnostics, d)
	if c.strict && d.Severity >= SeverityError {
		return d
	}
	return nil
}

func (c *Collector) Warnf(line int, format string, args ...any) {
	// Warnings never abort, even in strict mode.
	_ = c.Add(Warningf(line, format, args...))
}

// All returns every collected diagnostic in order of appearance.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// Filter returns the diagnostics of exactly the given severity.
func (c *Collector) Filter(severity Severity) []Diagnostic {
	var result []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == severity {
			result = append(result, d)
		}
	}
	return result
}

func (c *Collector) Warnings() []Diagnostic { return c.Filter(SeverityWarning) }
func (c *Collector) Errors() []Diagnostic   { return c.Filter(SeverityError) }
func (c *Collector) Critical() []Diagnostic { return c.Filter(SeverityCritical) }

// HasErrors reports whether any diagnostic at or above SeverityError
// was collected.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

func (c *Collector) Len() int { return len(c.diagnostics) }

func (c *Collector) Reset() { c.diagnostics = nil }

// Summary renders a one-line count by severity, "no diagnostics" when
// empty.
func (c *Collector) Summary() string {
	if len(c.diagnostics) == 0 {
		return "no diagnostics"
	}
	counts := map[Severity]int{}
	for _, d := range c.diagnostics {
		counts[d.Severity]++
	}
	var parts []string
	for _, s := range []Severity{SeverityCritical, SeverityError, SeverityWarning} {
		if n := counts[s]; n > 0 {
			label := s.String()
			if n != 1 {
				label += "s"
			}
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	return strings.Join(parts, ", ")
}
