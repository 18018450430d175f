package screening

import (
	"context"
	"time"

	"aml-screening-engine/internal/application/dto"
	"aml-screening-engine/internal/domain/screening"
	"aml-screening-engine/internal/pkg/metrics"
)

// ScreenUseCase handles single-transaction screening requests
type ScreenUseCase struct {
	service *screening.Service
	metrics *metrics.Metrics

	analysisTimeout time.Duration
}

// NewScreenUseCase creates the single-transaction use case. metrics may
// be nil.
func NewScreenUseCase(service *screening.Service, m *metrics.Metrics, analysisTimeout time.Duration) *ScreenUseCase {
	return &ScreenUseCase{
		service:         service,
		metrics:         m,
		analysisTimeout: analysisTimeout,
	}
}

// Execute screens one transaction and returns its verdict
func (uc *ScreenUseCase) Execute(ctx context.Context, req dto.ScreenRequest) (*dto.ScreenResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.analysisTimeout)
	defer cancel()

	tx, err := req.ToTransaction()
	if err != nil {
		return nil, err
	}

	verdict, err := uc.service.Screen(ctx, tx)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordVerdict(string(verdict.Level), verdict.ShouldBlock,
		float64(verdict.LatencyMs)/1000)

	resp := dto.FromVerdict(verdict)
	return &resp, nil
}
