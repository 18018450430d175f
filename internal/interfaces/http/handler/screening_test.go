package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aml-screening-engine/internal/application/dto"
	appscreening "aml-screening-engine/internal/application/screening"
	"aml-screening-engine/internal/domain/screening"
	"aml-screening-engine/internal/infrastructure/geo"
	"aml-screening-engine/internal/infrastructure/rules"
	"aml-screening-engine/internal/infrastructure/velocity"
)

type memoryVerdicts struct {
	byTx map[string]*screening.RiskVerdict
}

func (m *memoryVerdicts) Save(_ context.Context, v *screening.RiskVerdict) error {
	m.byTx[v.TransactionID] = v
	return nil
}

func (m *memoryVerdicts) GetByTransactionID(_ context.Context, id string) (*screening.RiskVerdict, error) {
	v, ok := m.byTx[id]
	if !ok {
		return nil, screening.ErrVerdictNotFound
	}
	return v, nil
}

func (m *memoryVerdicts) ListByUserID(_ context.Context, userID string, limit, offset int) ([]*screening.RiskVerdict, error) {
	var out []*screening.RiskVerdict
	for _, v := range m.byTx {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newTestHandler(t *testing.T, verdicts screening.VerdictRepository) *ScreeningHandler {
	t.Helper()

	table := geo.Default()
	scorer := geo.NewScorer(table, geo.DefaultScorerConfig())
	engine := rules.NewDefaultEngine(rules.DefaultConfig(), table)
	tracker := velocity.NewTracker(velocity.DefaultConfig(), nil)
	svc := screening.NewService(scorer, engine, tracker, nil, nil, nil)

	screenUC := appscreening.NewScreenUseCase(svc, nil, 5*time.Second)
	batchUC := appscreening.NewBatchUseCase(svc, nil, nil, appscreening.DefaultBatchConfig())

	return NewScreeningHandler(screenUC, batchUC, verdicts)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestScreenEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)

	w := postJSON(t, h.Screen, "/api/v1/screening/screen", dto.ScreenRequest{
		TransactionID: "tx-1",
		UserID:        "user-1",
		UserCountry:   "US",
		IPCountry:     "IR",
		Amount:        "100",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ScreenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "tx-1", resp.TransactionID)
	assert.Equal(t, "CRITICAL", resp.RiskLevel)
	assert.True(t, resp.ShouldBlock)
	assert.Contains(t, resp.TriggeredRules, screening.GeoMismatchRuleID)
}

func TestScreenEndpointMalformedBody(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/screening/screen", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.Screen(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScreenEndpointInputErrors(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name string
		req  dto.ScreenRequest
	}{
		{"missing user", dto.ScreenRequest{TransactionID: "tx-1", UserCountry: "US"}},
		{"bad country", dto.ScreenRequest{TransactionID: "tx-1", UserID: "u1", UserCountry: "USA"}},
		{"bad amount", dto.ScreenRequest{TransactionID: "tx-1", UserID: "u1", UserCountry: "US", Amount: "many"}},
		{"bad timestamp", dto.ScreenRequest{TransactionID: "tx-1", UserID: "u1", UserCountry: "US", Timestamp: "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Screen, "/api/v1/screening/screen", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBatchScreenEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)

	var txs []dto.ScreenRequest
	for i := 0; i < 3; i++ {
		txs = append(txs, dto.ScreenRequest{
			TransactionID: fmt.Sprintf("tx-%d", i),
			UserID:        fmt.Sprintf("u%d", i),
			UserCountry:   "US",
			IPCountry:     "US",
			Amount:        "100",
		})
	}

	w := postJSON(t, h.BatchScreen, "/api/v1/screening/screen/batch", dto.BatchScreenRequest{Transactions: txs})

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BatchScreenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Results, 3)
	assert.Equal(t, 3, resp.Summary.Succeeded)
}

func TestBatchScreenEndpointEmpty(t *testing.T) {
	h := newTestHandler(t, nil)

	w := postJSON(t, h.BatchScreen, "/api/v1/screening/screen/batch", dto.BatchScreenRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVerdictByTransaction(t *testing.T) {
	store := &memoryVerdicts{byTx: map[string]*screening.RiskVerdict{
		"tx-1": {
			ID:            uuid.New(),
			TransactionID: "tx-1",
			UserID:        "user-1",
			Score:         60,
			Level:         screening.RiskLevelHigh,
			ScreenedAt:    time.Now(),
		},
	}}
	h := newTestHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/screening/transactions/tx-1/verdict", nil)
	req.SetPathValue("id", "tx-1")
	w := httptest.NewRecorder()
	h.GetVerdictByTransaction(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ScreenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 60, resp.RiskScore)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/screening/transactions/missing/verdict", nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	h.GetVerdictByTransaction(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListVerdictsWithoutStore(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/screening/users/user-1/verdicts", nil)
	req.SetPathValue("id", "user-1")
	w := httptest.NewRecorder()
	h.ListVerdictsByUser(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Count)
}
