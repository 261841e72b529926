package detect

import (
	"github.com/mikewolf256/detection-engineering-mini-lab/models"
)

// Filter returns the subsequence of events matched by the rule, in input
// order. The input is never mutated, so running Filter over its own output
// returns the same list.
func Filter(rule Rule, events []models.Event) []models.Event {
	matched := []models.Event{}
	for _, e := range events {
		if rule.Match(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Finding ties a matched event to the rule that flagged it
type Finding struct {
	Rule        string       `json:"rule"`
	Severity    Severity     `json:"severity"`
	Description string       `json:"description"`
	Event       models.Event `json:"event"`
}

// Engine runs a rule table over event batches
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with the given rules, or the default table
// when none are given
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Rules returns the engine's rule table
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Detect evaluates every rule against every event. Findings come back
// grouped by rule, and within a rule in event arrival order.
func (e *Engine) Detect(events []models.Event) []Finding {
	var findings []Finding
	for _, rule := range e.rules {
		for _, ev := range events {
			if rule.Match(ev) {
				findings = append(findings, Finding{
					Rule:        rule.Name(),
					Severity:    rule.Severity(),
					Description: rule.Description(),
					Event:       ev,
				})
			}
		}
	}
	return findings
}
