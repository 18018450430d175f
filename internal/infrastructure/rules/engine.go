package rules

import (
	"sync/atomic"

	"aml-screening-engine/internal/domain/screening"
)

// Rule is a single detection check. Implementations must be stateless:
// everything they need arrives through the transaction, the velocity
// snapshot and the config.
type Rule interface {
	ID() string
	Evaluate(tx screening.Transaction, snap screening.WindowSnapshot, cfg Config) screening.RuleFinding
}

// Engine runs registered rules against a transaction in registration
// order. Config updates swap in atomically so an in-flight evaluation
// always sees one consistent config.
type Engine struct {
	rules []Rule
	cfg   atomic.Pointer[Config]
}

// NewEngine creates a rule engine with the given config and no rules
func NewEngine(cfg Config) *Engine {
	e := &Engine{}
	e.cfg.Store(&cfg)
	return e
}

// NewDefaultEngine creates an engine with the standard rule set registered
// in the canonical order.
func NewDefaultEngine(cfg Config, highRisk HighRiskLookup) *Engine {
	e := NewEngine(cfg)
	e.Register(&LargeTransactionRule{})
	e.Register(&HighFrequencyRule{})
	e.Register(&RapidMovementRule{})
	e.Register(NewHighRiskCountryRule(highRisk))
	return e
}

// Register appends a rule. Evaluation order is registration order, which
// fixes the order of triggered rules in every verdict.
func (e *Engine) Register(r Rule) {
	e.rules = append(e.rules, r)
}

// Config returns the currently active config
func (e *Engine) Config() Config {
	return *e.cfg.Load()
}

// UpdateConfig atomically replaces the rule config
func (e *Engine) UpdateConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg.Store(&cfg)
	return nil
}

// Evaluate runs every registered rule and returns one finding per rule,
// triggered or not. A disabled rule yields an untriggered finding so the
// output shape is stable across config changes.
func (e *Engine) Evaluate(tx screening.Transaction, snap screening.WindowSnapshot) []screening.RuleFinding {
	cfg := *e.cfg.Load()

	findings := make([]screening.RuleFinding, 0, len(e.rules))
	for _, r := range e.rules {
		findings = append(findings, r.Evaluate(tx, snap, cfg))
	}
	return findings
}
