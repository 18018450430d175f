package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"aml-screening-engine/internal/domain/screening"
)

// ScreenRequest is the API request for screening a single transaction
type ScreenRequest struct {
	TransactionID   string `json:"transaction_id" validate:"required"`
	UserID          string `json:"user_id" validate:"required"`
	UserCountry     string `json:"user_country" validate:"required,len=2"`
	IPAddress       string `json:"ip_address,omitempty"`
	IPCountry       string `json:"ip_country,omitempty"`
	Amount          string `json:"amount,omitempty"`
	Currency        string `json:"currency,omitempty"`
	TransactionType string `json:"transaction_type,omitempty"`
	Timestamp       string `json:"timestamp,omitempty"`
}

// ToTransaction converts the request into a domain transaction
func (r *ScreenRequest) ToTransaction() (screening.Transaction, error) {
	tx := screening.Transaction{
		ID:              r.TransactionID,
		UserID:          r.UserID,
		DeclaredCountry: r.UserCountry,
		Locator:         r.IPAddress,
		ObservedCountry: r.IPCountry,
		Currency:        r.Currency,
		Type:            screening.TransactionType(r.TransactionType),
		Timestamp:       time.Now(),
	}

	if r.Amount != "" {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			return screening.Transaction{}, fmt.Errorf("%w: %q", screening.ErrInvalidAmount, r.Amount)
		}
		tx.Amount = amount
	}
	if r.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return screening.Transaction{}, fmt.Errorf("%w: %q", screening.ErrInvalidTimestamp, r.Timestamp)
		}
		tx.Timestamp = ts
	}

	return tx, nil
}

// ScreenResponse is the API response for a screening verdict
type ScreenResponse struct {
	VerdictID      uuid.UUID `json:"verdict_id"`
	TransactionID  string    `json:"transaction_id"`
	UserID         string    `json:"user_id"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      string    `json:"risk_level"`
	ShouldBlock    bool      `json:"should_block"`
	TriggeredRules []string  `json:"triggered_rules"`
	UserCountry    string    `json:"user_country"`
	IPCountry      string    `json:"ip_country,omitempty"`
	Recommendation string    `json:"recommendation"`
	ScreenedAt     time.Time `json:"screened_at"`
	LatencyMs      int64     `json:"latency_ms"`
}

// FromVerdict builds the API response from a domain verdict
func FromVerdict(v *screening.RiskVerdict) ScreenResponse {
	return ScreenResponse{
		VerdictID:      v.ID,
		TransactionID:  v.TransactionID,
		UserID:         v.UserID,
		RiskScore:      v.Score,
		RiskLevel:      string(v.Level),
		ShouldBlock:    v.ShouldBlock,
		TriggeredRules: v.TriggeredRules,
		UserCountry:    v.DeclaredCountry,
		IPCountry:      v.ObservedCountry,
		Recommendation: v.Recommendation,
		ScreenedAt:     v.ScreenedAt,
		LatencyMs:      v.LatencyMs,
	}
}

// BatchScreenRequest is the API request for screening a batch
type BatchScreenRequest struct {
	Transactions []ScreenRequest `json:"transactions" validate:"required"`
}

// RowResult is the per-row outcome inside a batch response. Exactly one
// of Verdict and Error is set.
type RowResult struct {
	Index   int             `json:"index"`
	Verdict *ScreenResponse `json:"verdict,omitempty"`
	Error   *RowErrorInfo   `json:"error,omitempty"`
}

// RowErrorInfo describes a failed batch row
type RowErrorInfo struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// BatchSummary aggregates the outcome of a batch run
type BatchSummary struct {
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Blocked   int            `json:"blocked"`
	ByLevel   map[string]int `json:"by_level"`
	ByRule    map[string]int `json:"by_rule"`
	Cancelled bool           `json:"cancelled"`
	ElapsedMs int64          `json:"elapsed_ms"`
}

// BatchScreenResponse is the API response for a batch screening run
type BatchScreenResponse struct {
	BatchID uuid.UUID    `json:"batch_id"`
	Results []RowResult  `json:"results"`
	Summary BatchSummary `json:"summary"`
}

// RuleConfigRequest updates detection rule parameters. Omitted sections
// keep their current values.
type RuleConfigRequest struct {
	LargeTransaction *LargeTransactionConfigDTO `json:"large_transaction,omitempty"`
	HighFrequency    *HighFrequencyConfigDTO    `json:"high_frequency,omitempty"`
	RapidMovement    *RapidMovementConfigDTO    `json:"rapid_movement,omitempty"`
	HighRiskCountry  *HighRiskCountryConfigDTO  `json:"high_risk_country,omitempty"`
}

// LargeTransactionConfigDTO mirrors the large-transaction rule config
type LargeTransactionConfigDTO struct {
	Enabled   bool   `json:"enabled"`
	Threshold string `json:"threshold"`
}

// HighFrequencyConfigDTO mirrors the high-frequency rule config
type HighFrequencyConfigDTO struct {
	Enabled         bool `json:"enabled"`
	MaxTransactions int  `json:"max_transactions"`
	WindowMinutes   int  `json:"window_minutes"`
}

// RapidMovementConfigDTO mirrors the rapid-movement rule config
type RapidMovementConfigDTO struct {
	Enabled       bool   `json:"enabled"`
	SumThreshold  string `json:"sum_threshold"`
	WindowMinutes int    `json:"window_minutes"`
}

// HighRiskCountryConfigDTO mirrors the high-risk-country rule config
type HighRiskCountryConfigDTO struct {
	Enabled bool `json:"enabled"`
	Block   bool `json:"block"`
}
