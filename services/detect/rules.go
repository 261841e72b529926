package detect

import (
	"strings"

	"github.com/mikewolf256/detection-engineering-mini-lab/models"
)

// Severity ranks how urgent a finding is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rule matches a single suspicious pattern in one process event. Rules must
// be pure: no I/O, no state, same event in means same answer out.
type Rule interface {
	Name() string
	Description() string
	Severity() Severity
	Match(e models.Event) bool
}

const pipeBashPattern = "| bash"

// CurlPipeBash flags command lines that pipe a downloaded script straight
// into a shell. The match is a case-insensitive substring check: spacing
// variants like "|bash" are deliberately not matched.
type CurlPipeBash struct{}

// Name returns the rule identifier
func (CurlPipeBash) Name() string {
	return "curl_pipe_bash"
}

// Description returns a human-readable summary of what the rule flags
func (CurlPipeBash) Description() string {
	return "Remote content piped directly into bash"
}

// Severity returns how urgent a match is
func (CurlPipeBash) Severity() Severity {
	return SeverityHigh
}

// Match reports whether the event's cmdline contains the pipe-to-bash
// pattern. Events without a cmdline never match.
func (CurlPipeBash) Match(e models.Event) bool {
	return strings.Contains(strings.ToLower(e.Cmdline()), pipeBashPattern)
}

// DefaultRules returns the rule table the hunt pipeline ships with
func DefaultRules() []Rule {
	return []Rule{
		CurlPipeBash{},
	}
}
