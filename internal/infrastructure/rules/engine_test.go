package rules

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aml-screening-engine/internal/domain/screening"
	"aml-screening-engine/internal/infrastructure/geo"
)

func testTx(amount int64) screening.Transaction {
	return screening.Transaction{
		ID:              "tx-1",
		UserID:          "user-1",
		DeclaredCountry: "US",
		ObservedCountry: "US",
		Amount:          decimal.NewFromInt(amount),
		Timestamp:       time.Now(),
	}
}

func snapWith(n int, each int64, ts time.Time) screening.WindowSnapshot {
	snap := screening.WindowSnapshot{EntityID: "user-1", Sum: decimal.Zero}
	for i := 0; i < n; i++ {
		entryTS := ts.Add(-time.Duration(i) * time.Minute)
		snap.Entries = append(snap.Entries, screening.WindowEntry{
			Timestamp: entryTS,
			Amount:    decimal.NewFromInt(each),
		})
		snap.Count++
		snap.Sum = snap.Sum.Add(decimal.NewFromInt(each))
	}
	return snap
}

func TestLargeTransactionRule(t *testing.T) {
	rule := &LargeTransactionRule{}
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		amount    int64
		triggered bool
		score     int
	}{
		{"below threshold", 9999, false, 0},
		{"at threshold", 10000, true, 40},
		{"double threshold", 20000, true, 60},
		{"five times threshold", 50000, true, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding := rule.Evaluate(testTx(tt.amount), screening.WindowSnapshot{}, cfg)

			assert.Equal(t, tt.triggered, finding.Triggered)
			assert.Equal(t, tt.score, finding.Score)
			assert.False(t, finding.Block)
		})
	}
}

func TestLargeTransactionRuleDisabled(t *testing.T) {
	rule := &LargeTransactionRule{}
	cfg := DefaultConfig()
	cfg.LargeTransaction.Enabled = false

	finding := rule.Evaluate(testTx(1000000), screening.WindowSnapshot{}, cfg)
	assert.False(t, finding.Triggered)
	assert.Equal(t, 0, finding.Score)
}

func TestHighFrequencyRule(t *testing.T) {
	rule := &HighFrequencyRule{}
	cfg := DefaultConfig()
	tx := testTx(100)

	// 9 prior plus the current one stays at the limit of 10.
	finding := rule.Evaluate(tx, snapWith(9, 100, tx.Timestamp), cfg)
	assert.False(t, finding.Triggered)

	// 10 prior plus the current one exceeds it.
	finding = rule.Evaluate(tx, snapWith(10, 100, tx.Timestamp), cfg)
	assert.True(t, finding.Triggered)
	assert.Equal(t, 30, finding.Score)

	// Double the limit.
	finding = rule.Evaluate(tx, snapWith(25, 100, tx.Timestamp), cfg)
	assert.True(t, finding.Triggered)
	assert.Equal(t, 85, finding.Score)
}

func TestHighFrequencyRuleIgnoresOldEntries(t *testing.T) {
	rule := &HighFrequencyRule{}
	cfg := DefaultConfig()
	tx := testTx(100)

	// All prior entries sit outside the 60 minute window.
	snap := snapWith(20, 100, tx.Timestamp.Add(-2*time.Hour))
	finding := rule.Evaluate(tx, snap, cfg)
	assert.False(t, finding.Triggered)
}

func TestRapidMovementRule(t *testing.T) {
	rule := &RapidMovementRule{}
	cfg := DefaultConfig()
	tx := testTx(2000)

	// 5 entries of 1000 within 30 minutes plus the current 2000 = 7000.
	finding := rule.Evaluate(tx, snapWith(5, 1000, tx.Timestamp), cfg)
	assert.False(t, finding.Triggered)

	// 9 entries of 1000 plus 2000 = 11000, over the 10000 threshold.
	finding = rule.Evaluate(tx, snapWith(9, 1000, tx.Timestamp), cfg)
	assert.True(t, finding.Triggered)
	assert.Equal(t, 70, finding.Score)
	assert.False(t, finding.Block)
}

func TestHighRiskCountryRule(t *testing.T) {
	rule := NewHighRiskCountryRule(geo.Default())
	cfg := DefaultConfig()

	tx := testTx(100)
	finding := rule.Evaluate(tx, screening.WindowSnapshot{}, cfg)
	assert.False(t, finding.Triggered)

	tx.DeclaredCountry = "KP"
	finding = rule.Evaluate(tx, screening.WindowSnapshot{}, cfg)
	assert.True(t, finding.Triggered)
	assert.Equal(t, 100, finding.Score)
	assert.True(t, finding.Block)

	tx.DeclaredCountry = "US"
	tx.ObservedCountry = "IR"
	finding = rule.Evaluate(tx, screening.WindowSnapshot{}, cfg)
	assert.True(t, finding.Triggered)
}

func TestHighRiskCountryRuleBlockToggle(t *testing.T) {
	rule := NewHighRiskCountryRule(geo.Default())
	cfg := DefaultConfig()
	cfg.HighRiskCountry.Block = false

	tx := testTx(100)
	tx.DeclaredCountry = "SY"
	finding := rule.Evaluate(tx, screening.WindowSnapshot{}, cfg)
	assert.True(t, finding.Triggered)
	assert.False(t, finding.Block)
}

func TestEngineEvaluateOrder(t *testing.T) {
	engine := NewDefaultEngine(DefaultConfig(), geo.Default())

	findings := engine.Evaluate(testTx(100), screening.WindowSnapshot{})

	require.Len(t, findings, 4)
	assert.Equal(t, LargeTransactionRuleID, findings[0].RuleID)
	assert.Equal(t, HighFrequencyRuleID, findings[1].RuleID)
	assert.Equal(t, RapidMovementRuleID, findings[2].RuleID)
	assert.Equal(t, HighRiskCountryRuleID, findings[3].RuleID)
}

func TestEngineDisabledRulesStillReport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LargeTransaction.Enabled = false
	cfg.HighFrequency.Enabled = false
	engine := NewDefaultEngine(cfg, geo.Default())

	findings := engine.Evaluate(testTx(1000000), screening.WindowSnapshot{})

	require.Len(t, findings, 4)
	for _, f := range findings {
		assert.False(t, f.Triggered)
	}
}

func TestEngineUpdateConfig(t *testing.T) {
	engine := NewDefaultEngine(DefaultConfig(), geo.Default())

	cfg := engine.Config()
	cfg.LargeTransaction.Threshold = decimal.NewFromInt(500)
	require.NoError(t, engine.UpdateConfig(cfg))

	findings := engine.Evaluate(testTx(600), screening.WindowSnapshot{})
	assert.True(t, findings[0].Triggered)
}

func TestEngineUpdateConfigRejectsInvalid(t *testing.T) {
	engine := NewDefaultEngine(DefaultConfig(), geo.Default())

	cfg := engine.Config()
	cfg.HighFrequency.MaxTransactions = -1

	err := engine.UpdateConfig(cfg)
	require.Error(t, err)

	// Old config stays active.
	assert.Equal(t, 10, engine.Config().HighFrequency.MaxTransactions)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := DefaultConfig()
	bad.LargeTransaction.Threshold = decimal.Zero
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.RapidMovement.Window = 0
	assert.Error(t, bad.Validate())
}

// Custom rules register alongside the built-ins and evaluate in order.
type stubRule struct{ id string }

func (r *stubRule) ID() string { return r.id }
func (r *stubRule) Evaluate(screening.Transaction, screening.WindowSnapshot, Config) screening.RuleFinding {
	return screening.RuleFinding{RuleID: r.id, Triggered: true, Score: 5}
}

func TestEngineCustomRule(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	engine.Register(&stubRule{id: "custom_check"})
	engine.Register(&LargeTransactionRule{})

	findings := engine.Evaluate(testTx(100), screening.WindowSnapshot{})

	require.Len(t, findings, 2)
	assert.Equal(t, "custom_check", findings[0].RuleID)
	assert.True(t, findings[0].Triggered)
}
