package screening

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiskLevel represents the severity of a screening verdict
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// TransactionType categorizes the payment channel of a transaction
type TransactionType string

const (
	TypeWire          TransactionType = "WIRE"
	TypeACH           TransactionType = "ACH"
	TypeCard          TransactionType = "CARD"
	TypeCash          TransactionType = "CASH"
	TypeInternal      TransactionType = "INTERNAL"
	TypeInternational TransactionType = "INTERNATIONAL"
	TypeOther         TransactionType = "OTHER"
)

// Transaction is the immutable input to a screening request.
// ObservedCountry is filled in by the country resolver before rule
// evaluation; it stays empty when the locator cannot be resolved.
type Transaction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	DeclaredCountry string          `json:"declared_country"`
	Locator         string          `json:"locator"` // IP address or other locator
	ObservedCountry string          `json:"observed_country"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Type            TransactionType `json:"type"`
	Timestamp       time.Time       `json:"timestamp"`
}

// Validate checks the structural invariants of a transaction.
// Violations are per-row input errors and never abort a batch.
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return ErrMissingTransactionID
	}
	if t.UserID == "" {
		return ErrMissingUserID
	}
	if !validCountryCode(t.DeclaredCountry) {
		return ErrInvalidCountryCode
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// validCountryCode reports whether s looks like an ISO-3166 alpha-2 code.
func validCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// GeoResult is the outcome of geographic mismatch scoring
type GeoResult struct {
	Score           int       `json:"score"`
	Level           RiskLevel `json:"level"`
	Reason          string    `json:"reason"`
	DeclaredCountry string    `json:"declared_country"`
	ObservedCountry string    `json:"observed_country"`
}

// Triggered reports whether the geo scorer found a mismatch worth flagging
func (g GeoResult) Triggered() bool {
	return g.Score > 0
}

// RuleFinding is the output of one detection rule evaluation.
// Immutable once produced.
type RuleFinding struct {
	RuleID    string `json:"rule_id"`
	Triggered bool   `json:"triggered"`
	Score     int    `json:"score"`
	Block     bool   `json:"block"`
	Reason    string `json:"reason"`
}

// WindowEntry is a single (timestamp, amount) observation in a velocity window
type WindowEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
}

// WindowSnapshot is a read-only view of an entity's velocity window.
// Entries are copies; mutating a snapshot never affects tracker state.
type WindowSnapshot struct {
	EntityID string          `json:"entity_id"`
	Count    int             `json:"count"`
	Sum      decimal.Decimal `json:"sum"`
	First    time.Time       `json:"first"`
	Last     time.Time       `json:"last"`
	Entries  []WindowEntry   `json:"entries,omitempty"`
}

// SumSince returns the sum of amounts observed at or after cutoff
func (s WindowSnapshot) SumSince(cutoff time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		if !e.Timestamp.Before(cutoff) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// RiskVerdict is the aggregate screening outcome for one transaction.
// Created once, never mutated after creation.
type RiskVerdict struct {
	ID              uuid.UUID `json:"id"`
	TransactionID   string    `json:"transaction_id"`
	UserID          string    `json:"user_id"`
	Score           int       `json:"risk_score"`
	Level           RiskLevel `json:"risk_level"`
	ShouldBlock     bool      `json:"should_block"`
	TriggeredRules  []string  `json:"triggered_rules"`
	DeclaredCountry string    `json:"user_country"`
	ObservedCountry string    `json:"ip_country"`
	Recommendation  string    `json:"recommendation"`
	ScreenedAt      time.Time `json:"screened_at"`
	LatencyMs       int64     `json:"latency_ms"`
}

// RowError records a failed row inside a batch run
type RowError struct {
	Index         int    `json:"index"`
	TransactionID string `json:"transaction_id"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// BatchRun aggregates the outcome of one batch screening call.
// Invariant: Succeeded + Failed == Total once finalized.
type BatchRun struct {
	ID          uuid.UUID         `json:"id"`
	Total       int               `json:"total"`
	Succeeded   int               `json:"succeeded"`
	Failed      int               `json:"failed"`
	ByLevel     map[RiskLevel]int `json:"by_level"`
	ByRule      map[string]int    `json:"by_rule"`
	Blocked     int               `json:"blocked"`
	RowErrors   []RowError        `json:"row_errors,omitempty"`
	Cancelled   bool              `json:"cancelled"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt time.Time         `json:"completed_at"`
}

// NewBatchRun creates a batch run aggregate for the given row count
func NewBatchRun(total int) *BatchRun {
	return &BatchRun{
		ID:        uuid.New(),
		Total:     total,
		ByLevel:   make(map[RiskLevel]int),
		ByRule:    make(map[string]int),
		StartedAt: time.Now(),
	}
}
