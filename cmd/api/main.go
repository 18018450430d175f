package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	appscreening "aml-screening-engine/internal/application/screening"
	"aml-screening-engine/internal/domain/screening"
	"aml-screening-engine/internal/infrastructure/cache/redis"
	"aml-screening-engine/internal/infrastructure/database/postgres"
	"aml-screening-engine/internal/infrastructure/geo"
	"aml-screening-engine/internal/infrastructure/http/router"
	"aml-screening-engine/internal/infrastructure/rules"
	"aml-screening-engine/internal/infrastructure/velocity"
	"aml-screening-engine/internal/interfaces/http/handler"
	"aml-screening-engine/internal/pkg/config"
	"aml-screening-engine/internal/pkg/logging"
	"aml-screening-engine/internal/pkg/metrics"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	logger.Info("starting screening engine", "version", version,
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	// Country risk table
	table := geo.Default()
	if cfg.Geo.TablePath != "" {
		entries, err := geo.LoadFile(cfg.Geo.TablePath)
		if err != nil {
			logger.Error("failed to load country table", "path", cfg.Geo.TablePath, "error", err)
			os.Exit(1)
		}
		table = geo.NewTable(entries)
	}
	logger.Info("country table loaded", "countries", table.Size())

	scorer := geo.NewScorer(table, geo.ScorerConfig{
		NeighborSameRegion:  cfg.Geo.NeighborSameRegion,
		NeighborCrossRegion: cfg.Geo.NeighborCrossRegion,
		SameRegion:          cfg.Geo.SameRegion,
		CrossRegion:         cfg.Geo.CrossRegion,
		UnknownCountry:      cfg.Geo.UnknownCountry,
	})

	tracker := velocity.NewTracker(velocity.Config{
		Horizon:    cfg.Velocity.Horizon,
		MaxEntries: cfg.Velocity.MaxEntries,
	}, logger)

	engine := rules.NewDefaultEngine(ruleConfigFrom(cfg.Rules), table)

	healthHandler := handler.NewHealthHandler(version)

	// Audit store
	var verdictRepo screening.VerdictRepository
	var dbClient *postgres.Client
	if cfg.Database.Enabled {
		dbClient, err = postgres.NewClient(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Name,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			logger.Warn("database connection failed, verdicts will not be persisted", "error", err)
		} else {
			if err := dbClient.AutoMigrate(); err != nil {
				logger.Error("database migration failed", "error", err)
				os.Exit(1)
			}
			verdictRepo = postgres.NewVerdictRepository(dbClient)
			healthHandler.AddCheck("database", dbClient)
			logger.Info("connected to postgres", "host", cfg.Database.Host, "port", cfg.Database.Port)
		}
	}

	// Country resolution, optionally cached in Redis
	var resolver screening.CountryResolver = newStaticCountryResolver()
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			logger.Warn("redis connection failed, country lookups are uncached", "error", err)
		} else {
			resolver = redis.NewCountryCache(redisClient, resolver, cfg.Redis.CountryTTL)
			healthHandler.AddCheck("redis", redisClient)
			logger.Info("connected to redis", "host", cfg.Redis.Host, "port", cfg.Redis.Port)
		}
	}

	service := screening.NewService(scorer, engine, tracker, resolver, verdictRepo, logger)
	service.SetResolveTimeout(cfg.Screening.ResolveTimeout)

	screenUseCase := appscreening.NewScreenUseCase(service, m, cfg.Screening.AnalysisTimeout)
	batchUseCase := appscreening.NewBatchUseCase(service, m, logger, appscreening.BatchConfig{
		MaxRows:    cfg.Batch.MaxRows,
		Workers:    cfg.Batch.Workers,
		RowTimeout: cfg.Batch.RowTimeout,
	})

	screeningHandler := handler.NewScreeningHandler(screenUseCase, batchUseCase, verdictRepo)
	adminHandler := handler.NewAdminHandler(engine, table, cfg.Geo.TablePath, logger)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	r := router.NewRouter(screeningHandler, adminHandler, healthHandler, metricsPath)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if dbClient != nil {
		dbClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("server stopped")
}

func ruleConfigFrom(rc config.RulesConfig) rules.Config {
	return rules.Config{
		LargeTransaction: rules.LargeTransactionConfig{
			Enabled:   rc.LargeTransactionEnabled,
			Threshold: rc.GetLargeTransactionThreshold(),
		},
		HighFrequency: rules.HighFrequencyConfig{
			Enabled:         rc.HighFrequencyEnabled,
			MaxTransactions: rc.HighFrequencyMax,
			Window:          rc.HighFrequencyWindow,
		},
		RapidMovement: rules.RapidMovementConfig{
			Enabled:      rc.RapidMovementEnabled,
			SumThreshold: rc.GetRapidMovementSumThreshold(),
			Window:       rc.RapidMovementWindow,
		},
		HighRiskCountry: rules.HighRiskCountryConfig{
			Enabled: rc.HighRiskCountryEnabled,
			Block:   rc.HighRiskCountryBlock,
		},
	}
}

// staticCountryResolver maps IP prefixes to countries from a small
// built-in table. It stands in for a real geolocation provider when
// none is configured; unmatched locators resolve as unknown.
type staticCountryResolver struct {
	prefixes map[string]string
}

func newStaticCountryResolver() *staticCountryResolver {
	return &staticCountryResolver{
		prefixes: map[string]string{
			"3.":   "US",
			"13.":  "US",
			"52.":  "US",
			"24.":  "CA",
			"25.":  "GB",
			"51.":  "GB",
			"78.":  "DE",
			"90.":  "FR",
			"126.": "JP",
			"203.": "AU",
			"196.": "ZA",
			"200.": "BR",
			"175.": "KP",
			"91.":  "IR",
		},
	}
}

func (r *staticCountryResolver) Resolve(_ context.Context, locator string) (string, error) {
	for prefix, country := range r.prefixes {
		if strings.HasPrefix(locator, prefix) {
			return country, nil
		}
	}
	return "", screening.ErrUnresolvedCountry
}
