package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"aml-screening-engine/internal/application/dto"
	"aml-screening-engine/internal/infrastructure/geo"
	"aml-screening-engine/internal/infrastructure/rules"
)

// AdminHandler exposes runtime configuration of the rule engine and the
// country table. Changes apply to new screenings only; in-flight
// evaluations keep the config they started with.
type AdminHandler struct {
	engine    *rules.Engine
	table     *geo.Table
	tablePath string
	logger    *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(engine *rules.Engine, table *geo.Table, tablePath string, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		engine:    engine,
		table:     table,
		tablePath: tablePath,
		logger:    logger,
	}
}

// GetRules handles GET /api/v1/screening/rules
func (h *AdminHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configToDTO(h.engine.Config()))
}

// UpdateRules handles PUT /api/v1/screening/rules. Omitted sections keep
// their current values; an invalid section rejects the whole update.
func (h *AdminHandler) UpdateRules(w http.ResponseWriter, r *http.Request) {
	var req dto.RuleConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cfg := h.engine.Config()
	if err := applyRuleUpdate(&cfg, req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.UpdateConfig(cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("rule config updated")
	writeJSON(w, http.StatusOK, configToDTO(cfg))
}

// ReloadCountries handles POST /api/v1/screening/countries/reload. The
// new table swaps in atomically; running batches keep their snapshot.
func (h *AdminHandler) ReloadCountries(w http.ResponseWriter, r *http.Request) {
	if h.tablePath == "" {
		writeError(w, http.StatusConflict, "No country table file configured")
		return
	}

	entries, err := geo.LoadFile(h.tablePath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load country table: "+err.Error())
		return
	}

	h.table.Replace(entries)
	h.logger.Info("country table reloaded", "countries", h.table.Size())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "reloaded",
		"countries": h.table.Size(),
	})
}

func configToDTO(cfg rules.Config) dto.RuleConfigRequest {
	return dto.RuleConfigRequest{
		LargeTransaction: &dto.LargeTransactionConfigDTO{
			Enabled:   cfg.LargeTransaction.Enabled,
			Threshold: cfg.LargeTransaction.Threshold.String(),
		},
		HighFrequency: &dto.HighFrequencyConfigDTO{
			Enabled:         cfg.HighFrequency.Enabled,
			MaxTransactions: cfg.HighFrequency.MaxTransactions,
			WindowMinutes:   int(cfg.HighFrequency.Window / time.Minute),
		},
		RapidMovement: &dto.RapidMovementConfigDTO{
			Enabled:       cfg.RapidMovement.Enabled,
			SumThreshold:  cfg.RapidMovement.SumThreshold.String(),
			WindowMinutes: int(cfg.RapidMovement.Window / time.Minute),
		},
		HighRiskCountry: &dto.HighRiskCountryConfigDTO{
			Enabled: cfg.HighRiskCountry.Enabled,
			Block:   cfg.HighRiskCountry.Block,
		},
	}
}

func applyRuleUpdate(cfg *rules.Config, req dto.RuleConfigRequest) error {
	if req.LargeTransaction != nil {
		threshold, err := decimal.NewFromString(req.LargeTransaction.Threshold)
		if err != nil {
			return err
		}
		cfg.LargeTransaction = rules.LargeTransactionConfig{
			Enabled:   req.LargeTransaction.Enabled,
			Threshold: threshold,
		}
	}
	if req.HighFrequency != nil {
		cfg.HighFrequency = rules.HighFrequencyConfig{
			Enabled:         req.HighFrequency.Enabled,
			MaxTransactions: req.HighFrequency.MaxTransactions,
			Window:          time.Duration(req.HighFrequency.WindowMinutes) * time.Minute,
		}
	}
	if req.RapidMovement != nil {
		threshold, err := decimal.NewFromString(req.RapidMovement.SumThreshold)
		if err != nil {
			return err
		}
		cfg.RapidMovement = rules.RapidMovementConfig{
			Enabled:      req.RapidMovement.Enabled,
			SumThreshold: threshold,
			Window:       time.Duration(req.RapidMovement.WindowMinutes) * time.Minute,
		}
	}
	if req.HighRiskCountry != nil {
		cfg.HighRiskCountry = rules.HighRiskCountryConfig{
			Enabled: req.HighRiskCountry.Enabled,
			Block:   req.HighRiskCountry.Block,
		}
	}
	return nil
}
