package screening

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aml-screening-engine/internal/application/dto"
	domain "aml-screening-engine/internal/domain/screening"
	"aml-screening-engine/internal/infrastructure/geo"
	"aml-screening-engine/internal/infrastructure/rules"
	"aml-screening-engine/internal/infrastructure/velocity"
)

func newTestBatch(t *testing.T, cfg BatchConfig) *BatchUseCase {
	t.Helper()

	table := geo.Default()
	scorer := geo.NewScorer(table, geo.DefaultScorerConfig())
	engine := rules.NewDefaultEngine(rules.DefaultConfig(), table)
	tracker := velocity.NewTracker(velocity.DefaultConfig(), nil)
	svc := domain.NewService(scorer, engine, tracker, nil, nil, nil)

	return NewBatchUseCase(svc, nil, nil, cfg)
}

func batchReq(id, user string, amount string, ts time.Time) dto.ScreenRequest {
	return dto.ScreenRequest{
		TransactionID: id,
		UserID:        user,
		UserCountry:   "US",
		IPCountry:     "US",
		Amount:        amount,
		Timestamp:     ts.Format(time.RFC3339),
	}
}

func TestBatchEmpty(t *testing.T) {
	uc := newTestBatch(t, DefaultBatchConfig())

	_, err := uc.Execute(context.Background(), dto.BatchScreenRequest{})
	assert.ErrorIs(t, err, domain.ErrBatchEmpty)
}

func TestBatchTooLarge(t *testing.T) {
	cfg := DefaultBatchConfig()
	cfg.MaxRows = 2
	uc := newTestBatch(t, cfg)

	now := time.Now()
	req := dto.BatchScreenRequest{Transactions: []dto.ScreenRequest{
		batchReq("tx-1", "u1", "100", now),
		batchReq("tx-2", "u2", "100", now),
		batchReq("tx-3", "u3", "100", now),
	}}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)
}

func TestBatchAtMaxRows(t *testing.T) {
	cfg := DefaultBatchConfig()
	cfg.MaxRows = 3
	uc := newTestBatch(t, cfg)

	now := time.Now()
	req := dto.BatchScreenRequest{Transactions: []dto.ScreenRequest{
		batchReq("tx-1", "u1", "100", now),
		batchReq("tx-2", "u2", "100", now),
		batchReq("tx-3", "u3", "100", now),
	}}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Summary.Succeeded)
}

func TestBatchAllValid(t *testing.T) {
	uc := newTestBatch(t, DefaultBatchConfig())

	now := time.Now()
	var reqs []dto.ScreenRequest
	for i := 0; i < 20; i++ {
		reqs = append(reqs, batchReq(
			fmt.Sprintf("tx-%d", i),
			fmt.Sprintf("user-%d", i%5),
			"250",
			now.Add(time.Duration(i)*time.Second),
		))
	}

	resp, err := uc.Execute(context.Background(), dto.BatchScreenRequest{Transactions: reqs})
	require.NoError(t, err)

	assert.Len(t, resp.Results, 20)
	assert.Equal(t, 20, resp.Summary.Total)
	assert.Equal(t, 20, resp.Summary.Succeeded)
	assert.Equal(t, 0, resp.Summary.Failed)
	assert.False(t, resp.Summary.Cancelled)

	for i, res := range resp.Results {
		assert.Equal(t, i, res.Index)
		require.NotNil(t, res.Verdict, "row %d has no verdict", i)
		assert.Nil(t, res.Error)
		assert.Equal(t, fmt.Sprintf("tx-%d", i), res.Verdict.TransactionID)
	}
}

func TestBatchRowFailuresDoNotAbort(t *testing.T) {
	uc := newTestBatch(t, DefaultBatchConfig())

	now := time.Now()
	reqs := []dto.ScreenRequest{
		batchReq("tx-1", "u1", "100", now),
		{TransactionID: "tx-2", UserID: "", UserCountry: "US"},    // missing user
		{TransactionID: "tx-3", UserID: "u3", UserCountry: "USA"}, // bad country
		batchReq("tx-4", "u4", "not-a-number", now),               // bad amount
		batchReq("tx-5", "u5", "100", now),
	}

	resp, err := uc.Execute(context.Background(), dto.BatchScreenRequest{Transactions: reqs})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Summary.Total)
	assert.Equal(t, 2, resp.Summary.Succeeded)
	assert.Equal(t, 3, resp.Summary.Failed)
	assert.Equal(t, resp.Summary.Total, resp.Summary.Succeeded+resp.Summary.Failed)

	for _, i := range []int{1, 2, 3} {
		require.NotNil(t, resp.Results[i].Error, "row %d should have failed", i)
		assert.Equal(t, domain.RowErrInput, resp.Results[i].Error.Code)
		assert.Nil(t, resp.Results[i].Verdict)
	}
	for _, i := range []int{0, 4} {
		require.NotNil(t, resp.Results[i].Verdict, "row %d should have succeeded", i)
	}
}

func TestBatchAllRowsInvalid(t *testing.T) {
	uc := newTestBatch(t, DefaultBatchConfig())

	reqs := []dto.ScreenRequest{
		{TransactionID: "", UserID: "u1", UserCountry: "US"},
		{TransactionID: "tx-2", UserID: "", UserCountry: "US"},
	}

	resp, err := uc.Execute(context.Background(), dto.BatchScreenRequest{Transactions: reqs})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Summary.Succeeded)
	assert.Equal(t, 2, resp.Summary.Failed)
}

func TestBatchDuplicateTransactionIDs(t *testing.T) {
	uc := newTestBatch(t, DefaultBatchConfig())

	now := time.Now()
	reqs := []dto.ScreenRequest{
		batchReq("tx-1", "u1", "100", now),
		batchReq("tx-1", "u1", "200", now.Add(time.Second)),
	}

	resp, err := uc.Execute(context.Background(), dto.BatchScreenRequest{Transactions: reqs})
	require.NoError(t, err)

	require.NotNil(t, resp.Results[0].Verdict)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, domain.RowErrInput, resp.Results[1].Error.Code)
}

// Rows for one entity must feed its velocity window in timestamp order
// even when the request carries them shuffled.
func TestBatchPerEntityTimestampOrder(t *testing.T) {
	uc := newTestBatch(t, DefaultBatchConfig())

	base := time.Now()
	// Three 4000 transfers inside 30 minutes: cumulative sums are 4000,
	// 8000, 12000, so only the latest crosses the 10000 threshold.
	reqs := []dto.ScreenRequest{
		batchReq("tx-last", "layering-user", "4000", base.Add(10*time.Minute)),
		batchReq("tx-first", "layering-user", "4000", base),
		batchReq("tx-mid", "layering-user", "4000", base.Add(5*time.Minute)),
	}

	resp, err := uc.Execute(context.Background(), dto.BatchScreenRequest{Transactions: reqs})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Summary.Succeeded)

	byID := map[string]*dto.ScreenResponse{}
	for _, res := range resp.Results {
		require.NotNil(t, res.Verdict)
		byID[res.Verdict.TransactionID] = res.Verdict
	}

	assert.NotContains(t, byID["tx-first"].TriggeredRules, rules.RapidMovementRuleID)
	assert.NotContains(t, byID["tx-mid"].TriggeredRules, rules.RapidMovementRuleID)
	assert.Contains(t, byID["tx-last"].TriggeredRules, rules.RapidMovementRuleID)
}

func TestBatchCancellation(t *testing.T) {
	uc := newTestBatch(t, DefaultBatchConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	now := time.Now()
	var reqs []dto.ScreenRequest
	for i := 0; i < 10; i++ {
		reqs = append(reqs, batchReq(fmt.Sprintf("tx-%d", i), fmt.Sprintf("u%d", i), "100", now))
	}

	resp, err := uc.Execute(ctx, dto.BatchScreenRequest{Transactions: reqs})
	require.NoError(t, err)

	assert.True(t, resp.Summary.Cancelled)
	assert.Equal(t, resp.Summary.Total, resp.Summary.Succeeded+resp.Summary.Failed)
	for _, res := range resp.Results {
		require.NotNil(t, res.Error)
		assert.Equal(t, domain.RowErrCancelled, res.Error.Code)
	}
}

func TestBatchSummaryByLevel(t *testing.T) {
	uc := newTestBatch(t, DefaultBatchConfig())

	now := time.Now()
	reqs := []dto.ScreenRequest{
		batchReq("tx-1", "u1", "100", now), // same country, LOW
		{TransactionID: "tx-2", UserID: "u2", UserCountry: "KP",
			Amount: "100", Timestamp: now.Format(time.RFC3339)}, // high-risk, CRITICAL
		batchReq("tx-3", "u3", "25000", now), // over the large-transaction threshold
	}

	resp, err := uc.Execute(context.Background(), dto.BatchScreenRequest{Transactions: reqs})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Summary.ByLevel[string(domain.RiskLevelLow)])
	assert.Equal(t, 1, resp.Summary.ByLevel[string(domain.RiskLevelCritical)])
	assert.Equal(t, 1, resp.Summary.Blocked)

	assert.Equal(t, 1, resp.Summary.ByRule[domain.GeoMismatchRuleID])
	assert.Equal(t, 1, resp.Summary.ByRule[rules.HighRiskCountryRuleID])
	assert.Equal(t, 1, resp.Summary.ByRule[rules.LargeTransactionRuleID])
	assert.Zero(t, resp.Summary.ByRule[rules.RapidMovementRuleID])
}
