package screening

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"aml-screening-engine/internal/application/dto"
	"aml-screening-engine/internal/domain/screening"
	"aml-screening-engine/internal/pkg/metrics"
)

// BatchConfig bounds a batch screening run
type BatchConfig struct {
	// MaxRows is the hard cap on rows per request.
	MaxRows int

	// Workers is the number of concurrent screening workers.
	Workers int

	// RowTimeout bounds the evaluation of a single row.
	RowTimeout time.Duration
}

// DefaultBatchConfig returns the standard batch limits
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxRows:    50000,
		Workers:    8,
		RowTimeout: 5 * time.Second,
	}
}

// BatchUseCase screens many transactions with bounded parallelism.
//
// Rows are sharded across workers by user id, so all rows for one entity
// land on the same worker and are processed in timestamp order. That
// keeps each entity's velocity window consistent with the order its
// transactions occurred, while unrelated entities screen in parallel.
type BatchUseCase struct {
	service *screening.Service
	metrics *metrics.Metrics
	logger  *slog.Logger
	cfg     BatchConfig
}

// NewBatchUseCase creates the batch screening use case
func NewBatchUseCase(service *screening.Service, m *metrics.Metrics, logger *slog.Logger, cfg BatchConfig) *BatchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultBatchConfig().Workers
	}
	return &BatchUseCase{
		service: service,
		metrics: m,
		logger:  logger,
		cfg:     cfg,
	}
}

// batchRow pairs a parsed transaction with its position in the request
type batchRow struct {
	index int
	tx    screening.Transaction
}

// Execute screens every row in the request and returns one result per
// row, in request order. Row failures never abort the batch; only an
// empty or oversized request fails the call itself.
func (uc *BatchUseCase) Execute(ctx context.Context, req dto.BatchScreenRequest) (*dto.BatchScreenResponse, error) {
	n := len(req.Transactions)
	if n == 0 {
		return nil, screening.ErrBatchEmpty
	}
	if uc.cfg.MaxRows > 0 && n > uc.cfg.MaxRows {
		return nil, fmt.Errorf("%w: %d rows (limit %d)", screening.ErrBatchTooLarge, n, uc.cfg.MaxRows)
	}

	run := screening.NewBatchRun(n)
	results := make([]dto.RowResult, n)

	rows := uc.parseRows(req.Transactions, results)
	shards := uc.shardRows(rows)

	var mu sync.Mutex
	record := func(i int, res dto.RowResult, v *screening.RiskVerdict) {
		// Each index is written exactly once; the lock only guards the
		// shared run counters.
		results[i] = res
		mu.Lock()
		defer mu.Unlock()
		if v != nil {
			run.Succeeded++
			run.ByLevel[v.Level]++
			for _, rule := range v.TriggeredRules {
				run.ByRule[rule]++
			}
			if v.ShouldBlock {
				run.Blocked++
			}
			uc.metrics.RecordBatchRow("succeeded")
			return
		}
		run.Failed++
		run.RowErrors = append(run.RowErrors, screening.RowError{
			Index:         i,
			TransactionID: res.Error.TransactionID,
			Code:          res.Error.Code,
			Message:       res.Error.Message,
		})
		uc.metrics.RecordBatchRow(res.Error.Code)
	}

	// Rows rejected during parsing count before the workers start.
	for i := range results {
		if results[i].Error != nil {
			record(i, results[i], nil)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, shard := range shards {
		if len(shard) == 0 {
			continue
		}
		shard := shard
		g.Go(func() error {
			uc.screenShard(gctx, shard, record)
			return nil
		})
	}
	// Workers report per-row failures through results, never as errors.
	_ = g.Wait()

	run.Cancelled = ctx.Err() != nil
	run.CompletedAt = time.Now()
	uc.metrics.RecordBatchDuration(run.CompletedAt.Sub(run.StartedAt).Seconds())

	uc.logger.Info("batch screening completed",
		"batch_id", run.ID,
		"total", run.Total,
		"succeeded", run.Succeeded,
		"failed", run.Failed,
		"blocked", run.Blocked,
		"cancelled", run.Cancelled,
		"elapsed_ms", run.CompletedAt.Sub(run.StartedAt).Milliseconds())

	return buildBatchResponse(run, results), nil
}

// parseRows converts requests to domain transactions, recording input
// errors (including duplicate transaction ids) directly into results.
// Returned rows are the ones that will be dispatched to workers.
func (uc *BatchUseCase) parseRows(reqs []dto.ScreenRequest, results []dto.RowResult) []batchRow {
	rows := make([]batchRow, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))

	for i, r := range reqs {
		results[i].Index = i

		tx, err := r.ToTransaction()
		if err == nil {
			err = tx.Validate()
		}
		if err == nil {
			if _, dup := seen[tx.ID]; dup {
				err = screening.ErrDuplicateTransaction
			} else {
				seen[tx.ID] = struct{}{}
			}
		}
		if err != nil {
			results[i].Error = &dto.RowErrorInfo{
				TransactionID: r.TransactionID,
				Code:          screening.RowErrInput,
				Message:       err.Error(),
			}
			continue
		}

		rows = append(rows, batchRow{index: i, tx: tx})
	}
	return rows
}

// shardRows groups rows by entity so one worker owns all of an entity's
// rows, then orders each shard by timestamp. The sort is stable: equal
// timestamps keep their request order.
func (uc *BatchUseCase) shardRows(rows []batchRow) [][]batchRow {
	shards := make([][]batchRow, uc.cfg.Workers)
	for _, r := range rows {
		h := fnv.New32a()
		h.Write([]byte(r.tx.UserID))
		s := int(h.Sum32()) % uc.cfg.Workers
		if s < 0 {
			s += uc.cfg.Workers
		}
		shards[s] = append(shards[s], r)
	}
	for _, shard := range shards {
		sort.SliceStable(shard, func(i, j int) bool {
			return shard[i].tx.Timestamp.Before(shard[j].tx.Timestamp)
		})
	}
	return shards
}

// screenShard processes one shard sequentially. Once the batch context
// is cancelled, every remaining row in the shard is marked cancelled
// without being evaluated.
func (uc *BatchUseCase) screenShard(ctx context.Context, shard []batchRow, record func(int, dto.RowResult, *screening.RiskVerdict)) {
	for _, r := range shard {
		if ctx.Err() != nil {
			record(r.index, rowFailure(r, screening.RowErrCancelled, "batch cancelled before row was screened"), nil)
			continue
		}

		rowCtx, cancel := context.WithTimeout(ctx, uc.cfg.RowTimeout)
		verdict, err := uc.service.Screen(rowCtx, r.tx)
		cancel()

		if err != nil {
			res := rowFailure(r, classifyRowError(ctx, err), err.Error())
			record(r.index, res, nil)
			continue
		}

		resp := dto.FromVerdict(verdict)
		record(r.index, dto.RowResult{Index: r.index, Verdict: &resp}, verdict)
	}
}

func rowFailure(r batchRow, code, msg string) dto.RowResult {
	return dto.RowResult{
		Index: r.index,
		Error: &dto.RowErrorInfo{
			TransactionID: r.tx.ID,
			Code:          code,
			Message:       msg,
		},
	}
}

// classifyRowError maps a screening failure to a row error code. A
// deadline hit on the row context is a timeout unless the whole batch
// was cancelled.
func classifyRowError(batchCtx context.Context, err error) string {
	switch {
	case batchCtx.Err() != nil:
		return screening.RowErrCancelled
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, screening.ErrRowTimeout):
		return screening.RowErrTimeout
	case screening.IsInputError(err):
		return screening.RowErrInput
	default:
		return screening.RowErrInternal
	}
}

func buildBatchResponse(run *screening.BatchRun, results []dto.RowResult) *dto.BatchScreenResponse {
	byLevel := make(map[string]int, len(run.ByLevel))
	for level, count := range run.ByLevel {
		byLevel[string(level)] = count
	}

	return &dto.BatchScreenResponse{
		BatchID: run.ID,
		Results: results,
		Summary: dto.BatchSummary{
			Total:     run.Total,
			Succeeded: run.Succeeded,
			Failed:    run.Failed,
			Blocked:   run.Blocked,
			ByLevel:   byLevel,
			ByRule:    run.ByRule,
			Cancelled: run.Cancelled,
			ElapsedMs: run.CompletedAt.Sub(run.StartedAt).Milliseconds(),
		},
	}
}
