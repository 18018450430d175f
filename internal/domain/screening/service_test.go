package screening

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScorer struct {
	result GeoResult
}

func (s *stubScorer) Score(declared, observed string) GeoResult {
	r := s.result
	r.DeclaredCountry = declared
	r.ObservedCountry = observed
	return r
}

type stubRules struct {
	findings []RuleFinding
}

func (s *stubRules) Evaluate(Transaction, WindowSnapshot) []RuleFinding {
	return s.findings
}

type stubVelocity struct {
	mu      sync.Mutex
	records []string
	snap    WindowSnapshot
}

func (s *stubVelocity) Record(entityID string, _ time.Time, _ decimal.Decimal) WindowSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, entityID)
	return s.snap
}

func (s *stubVelocity) Snapshot(string) WindowSnapshot {
	return s.snap
}

type stubResolver struct {
	country string
	err     error
}

func (s *stubResolver) Resolve(context.Context, string) (string, error) {
	return s.country, s.err
}

type stubVerdicts struct {
	mu    sync.Mutex
	saved []*RiskVerdict
	done  chan struct{}
}

func (s *stubVerdicts) Save(_ context.Context, v *RiskVerdict) error {
	s.mu.Lock()
	s.saved = append(s.saved, v)
	s.mu.Unlock()
	if s.done != nil {
		close(s.done)
	}
	return nil
}

func (s *stubVerdicts) GetByTransactionID(context.Context, string) (*RiskVerdict, error) {
	return nil, ErrVerdictNotFound
}

func (s *stubVerdicts) ListByUserID(context.Context, string, int, int) ([]*RiskVerdict, error) {
	return nil, nil
}

func serviceTx() Transaction {
	return Transaction{
		ID:              "tx-1",
		UserID:          "user-1",
		DeclaredCountry: "US",
		Amount:          decimal.NewFromInt(100),
		Timestamp:       time.Now(),
	}
}

func TestEvaluateValidation(t *testing.T) {
	svc := NewService(&stubScorer{}, &stubRules{}, &stubVelocity{}, nil, nil, nil)

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"missing id", func(tx *Transaction) { tx.ID = "" }, ErrMissingTransactionID},
		{"missing user", func(tx *Transaction) { tx.UserID = "" }, ErrMissingUserID},
		{"bad country", func(tx *Transaction) { tx.DeclaredCountry = "USA" }, ErrInvalidCountryCode},
		{"negative amount", func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-1) }, ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := serviceTx()
			tt.mutate(&tx)
			_, err := svc.Evaluate(context.Background(), tx)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluateDoesNotMutateState(t *testing.T) {
	vel := &stubVelocity{}
	svc := NewService(
		&stubScorer{result: GeoResult{Score: 60, Level: RiskLevelHigh, Reason: "geo_cross_region"}},
		&stubRules{},
		vel, nil, nil, nil,
	)

	first, err := svc.Evaluate(context.Background(), serviceTx())
	require.NoError(t, err)
	second, err := svc.Evaluate(context.Background(), serviceTx())
	require.NoError(t, err)

	assert.Empty(t, vel.records)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Level, second.Level)
	assert.Equal(t, first.TriggeredRules, second.TriggeredRules)
	assert.Equal(t, first.ShouldBlock, second.ShouldBlock)
}

func TestScreenRecordsVelocity(t *testing.T) {
	vel := &stubVelocity{}
	svc := NewService(&stubScorer{}, &stubRules{}, vel, nil, nil, nil)

	_, err := svc.Screen(context.Background(), serviceTx())
	require.NoError(t, err)

	assert.Equal(t, []string{"user-1"}, vel.records)
}

func TestScreenPersistsVerdict(t *testing.T) {
	verdicts := &stubVerdicts{done: make(chan struct{})}
	svc := NewService(&stubScorer{}, &stubRules{}, &stubVelocity{}, nil, verdicts, nil)

	verdict, err := svc.Screen(context.Background(), serviceTx())
	require.NoError(t, err)

	select {
	case <-verdicts.done:
	case <-time.After(time.Second):
		t.Fatal("verdict was never persisted")
	}

	verdicts.mu.Lock()
	defer verdicts.mu.Unlock()
	require.Len(t, verdicts.saved, 1)
	assert.Equal(t, verdict.ID, verdicts.saved[0].ID)
}

func TestEvaluateResolvesObservedCountry(t *testing.T) {
	scorer := &stubScorer{result: GeoResult{Score: 0, Level: RiskLevelLow, Reason: "geo_same_country"}}
	svc := NewService(scorer, &stubRules{}, &stubVelocity{}, &stubResolver{country: "us"}, nil, nil)

	tx := serviceTx()
	tx.Locator = "3.14.15.9"
	verdict, err := svc.Evaluate(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, "US", verdict.ObservedCountry)
}

func TestEvaluateDegradesOnResolutionFailure(t *testing.T) {
	scorer := &stubScorer{result: GeoResult{Score: 65, Level: RiskLevelHigh, Reason: "geo_unknown_country"}}

	for _, resolverErr := range []error{ErrUnresolvedCountry, errors.New("provider down")} {
		svc := NewService(scorer, &stubRules{}, &stubVelocity{}, &stubResolver{err: resolverErr}, nil, nil)

		tx := serviceTx()
		tx.Locator = "203.0.113.7"
		verdict, err := svc.Evaluate(context.Background(), tx)

		require.NoError(t, err)
		assert.Equal(t, "", verdict.ObservedCountry)
		assert.Equal(t, RiskLevelHigh, verdict.Level)
	}
}

func TestEvaluateUppercasesCountries(t *testing.T) {
	scorer := &stubScorer{}
	svc := NewService(scorer, &stubRules{}, &stubVelocity{}, nil, nil, nil)

	tx := serviceTx()
	tx.DeclaredCountry = "us"
	tx.ObservedCountry = "ca"
	verdict, err := svc.Evaluate(context.Background(), tx)
	require.NoError(t, err)

	assert.Equal(t, "US", verdict.DeclaredCountry)
	assert.Equal(t, "CA", verdict.ObservedCountry)
}

func TestEvaluateSetsLatency(t *testing.T) {
	svc := NewService(&stubScorer{}, &stubRules{}, &stubVelocity{}, nil, nil, nil)

	verdict, err := svc.Evaluate(context.Background(), serviceTx())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, verdict.LatencyMs, int64(0))
	assert.False(t, verdict.ScreenedAt.IsZero())
}
