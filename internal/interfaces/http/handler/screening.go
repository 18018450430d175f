package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"aml-screening-engine/internal/application/dto"
	appscreening "aml-screening-engine/internal/application/screening"
	"aml-screening-engine/internal/domain/screening"
)

// ScreeningHandler handles screening HTTP requests
type ScreeningHandler struct {
	screenUseCase *appscreening.ScreenUseCase
	batchUseCase  *appscreening.BatchUseCase
	verdicts      screening.VerdictRepository
}

// NewScreeningHandler creates a new screening handler. verdicts may be
// nil when no audit store is configured; the lookup endpoints then
// return 404.
func NewScreeningHandler(
	screenUseCase *appscreening.ScreenUseCase,
	batchUseCase *appscreening.BatchUseCase,
	verdicts screening.VerdictRepository,
) *ScreeningHandler {
	return &ScreeningHandler{
		screenUseCase: screenUseCase,
		batchUseCase:  batchUseCase,
		verdicts:      verdicts,
	}
}

// Screen handles POST /api/v1/screening/screen
func (h *ScreeningHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var req dto.ScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.screenUseCase.Execute(r.Context(), req)
	if err != nil {
		if screening.IsInputError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Screening failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// BatchScreen handles POST /api/v1/screening/screen/batch
func (h *ScreeningHandler) BatchScreen(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.batchUseCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, screening.ErrBatchEmpty):
			writeError(w, http.StatusBadRequest, "No transactions provided")
		case errors.Is(err, screening.ErrBatchTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Batch screening failed: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetVerdictByTransaction handles GET /api/v1/screening/transactions/{id}/verdict
func (h *ScreeningHandler) GetVerdictByTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Transaction ID is required")
		return
	}

	if h.verdicts == nil {
		writeError(w, http.StatusNotFound, "Verdict not found")
		return
	}

	verdict, err := h.verdicts.GetByTransactionID(r.Context(), id)
	if err != nil {
		if errors.Is(err, screening.ErrVerdictNotFound) {
			writeError(w, http.StatusNotFound, "Verdict not found for transaction")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get verdict: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FromVerdict(verdict))
}

// ListVerdictsByUser handles GET /api/v1/screening/users/{id}/verdicts
func (h *ScreeningHandler) ListVerdictsByUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	if h.verdicts == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"verdicts": []dto.ScreenResponse{}, "count": 0})
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	verdicts, err := h.verdicts.ListByUserID(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list verdicts: "+err.Error())
		return
	}

	responses := make([]dto.ScreenResponse, len(verdicts))
	for i, v := range verdicts {
		responses[i] = dto.FromVerdict(v)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"verdicts": responses,
		"count":    len(responses),
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
