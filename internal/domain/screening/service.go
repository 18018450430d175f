package screening

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Service orchestrates screening of a single transaction: country
// resolution, geo scoring, rule evaluation, verdict aggregation,
// velocity recording and audit persistence.
type Service struct {
	scorer   GeoScorer
	rules    RuleEvaluator
	velocity VelocityTracker
	resolver CountryResolver
	verdicts VerdictRepository
	logger   *slog.Logger

	resolveTimeout time.Duration
	persistTimeout time.Duration
}

// NewService creates a screening service. resolver and verdicts may be
// nil in standalone mode; resolution then always degrades to unknown.
func NewService(
	scorer GeoScorer,
	rules RuleEvaluator,
	velocity VelocityTracker,
	resolver CountryResolver,
	verdicts VerdictRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		scorer:         scorer,
		rules:          rules,
		velocity:       velocity,
		resolver:       resolver,
		verdicts:       verdicts,
		logger:         logger,
		resolveTimeout: 2 * time.Second,
		persistTimeout: 5 * time.Second,
	}
}

// SetResolveTimeout bounds a single country lookup
func (s *Service) SetResolveTimeout(d time.Duration) {
	s.resolveTimeout = d
}

// Screen runs the full pipeline for one transaction: evaluate, record
// the transaction in the sender's velocity window, and hand the verdict
// to the audit sink without blocking the caller.
func (s *Service) Screen(ctx context.Context, tx Transaction) (*RiskVerdict, error) {
	verdict, err := s.Evaluate(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.velocity.Record(tx.UserID, tx.Timestamp, tx.Amount)

	if s.verdicts != nil {
		// Fire-and-forget: audit storage must never block verdict return.
		go func(v RiskVerdict) {
			bgCtx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
			defer cancel()
			if err := s.verdicts.Save(bgCtx, &v); err != nil {
				s.logger.Warn("verdict persistence failed",
					"transaction_id", v.TransactionID, "error", err)
			}
		}(*verdict)
	}

	return verdict, nil
}

// Evaluate computes a verdict without mutating velocity state or
// persisting anything. Re-running it with an unchanged window yields an
// identical verdict apart from its generated ID and timestamps.
func (s *Service) Evaluate(ctx context.Context, tx Transaction) (*RiskVerdict, error) {
	startTime := time.Now()

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	tx.DeclaredCountry = strings.ToUpper(tx.DeclaredCountry)
	if tx.ObservedCountry == "" && tx.Locator != "" {
		tx.ObservedCountry = s.resolveCountry(ctx, tx.Locator)
	}
	tx.ObservedCountry = strings.ToUpper(tx.ObservedCountry)

	snap := s.velocity.Snapshot(tx.UserID)

	// Geo scoring and rule evaluation are independent; run them
	// concurrently the way the single-transaction path is expected to.
	var (
		geo      GeoResult
		findings []RuleFinding
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		geo = s.scorer.Score(tx.DeclaredCountry, tx.ObservedCountry)
		return nil
	})
	g.Go(func() error {
		findings = s.rules.Evaluate(tx, snap)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	verdict := Aggregate(tx, geo, findings)
	verdict.LatencyMs = time.Since(startTime).Milliseconds()
	return verdict, nil
}

// resolveCountry maps the locator to a country code, degrading to the
// empty (unknown) country on any failure. Resolution failures are a
// warning, not an error: the scorer treats unknown as HIGH risk.
func (s *Service) resolveCountry(ctx context.Context, locator string) string {
	if s.resolver == nil {
		return ""
	}

	rctx, cancel := context.WithTimeout(ctx, s.resolveTimeout)
	defer cancel()

	country, err := s.resolver.Resolve(rctx, locator)
	if err != nil {
		if !errors.Is(err, ErrUnresolvedCountry) {
			s.logger.Warn("country resolution failed", "locator", locator, "error", err)
		}
		return ""
	}
	return country
}
