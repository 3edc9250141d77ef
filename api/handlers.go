/*
handlers.go - HTTP handlers for the collaborator surface

PURPOSE:
  Maps the ledger store's operations onto HTTP. The UI shell never computes
  salary itself; it renders what these endpoints return.

ERROR MAPPING:
  ledger.ErrNotReady        503 (store still loading)
  ledger.ErrUnknownWorker   404
  validation sentinels      400 (prior state preserved by the store)
  anything else             500
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/warp/household-ledger/engine"
	"github.com/warp/household-ledger/ledger"
)

// Handler serves the collaborator API on top of the ledger store.
type Handler struct {
	store *ledger.Store
	log   *logrus.Logger
}

func NewHandler(store *ledger.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{store: store, log: log}
}

// =============================================================================
// HELPERS
// =============================================================================

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotReady):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ledger.ErrUnknownWorker):
		respondError(w, http.StatusNotFound, err.Error())
	case ledger.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.WithError(err).Error("internal error")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func kindParam(r *http.Request) engine.WorkerKind {
	return engine.WorkerKind(chi.URLParam(r, "kind"))
}

// =============================================================================
// HEALTH / LIFECYCLE
// =============================================================================

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthDTO{Status: "ok", Ready: h.store.IsReady()})
}

// =============================================================================
// WORKERS
// =============================================================================

func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.store.Workers()
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	out := make([]WorkerDTO, 0, len(workers))
	for _, kind := range engine.Kinds() {
		if p, ok := workers[kind]; ok {
			out = append(out, workerToDTO(kind, p))
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	kind := kindParam(r)
	worker, err := h.store.Worker(kind)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, workerToDTO(kind, worker))
}

func (h *Handler) GetActiveWorker(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ActiveWorkerDTO{Kind: string(h.store.ActiveWorker())})
}

func (h *Handler) SetActiveWorker(w http.ResponseWriter, r *http.Request) {
	var req SetActiveWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.SetActiveWorker(engine.WorkerKind(req.Kind)); err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ActiveWorkerDTO{Kind: req.Kind})
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (h *Handler) GetDayStatus(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	rec, err := h.store.GetDayStatus(kindParam(r), date)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, DayStatusDTO{Date: date, Morning: rec.Morning, Evening: rec.Evening})
}

func (h *Handler) SetDayStatus(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	var req SetDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind := kindParam(r)
	if err := h.store.SetDayStatus(kind, date, engine.Shift(req.Shift), req.Value); err != nil {
		h.respondStoreError(w, err)
		return
	}

	rec, err := h.store.GetDayStatus(kind, date)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, DayStatusDTO{Date: date, Morning: rec.Morning, Evening: rec.Evening})
}

// =============================================================================
// SETTINGS
// =============================================================================

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind := kindParam(r)
	patch := ledger.SettingsPatch{
		MonthlySalary:  req.MonthlySalary,
		RatePerLitre:   req.RatePerLitre,
		DefaultLitres:  req.DefaultLitres,
		Shifts:         req.Shifts,
		IncludeSundays: req.IncludeSundays,
	}
	if err := h.store.UpdateSettings(kind, patch); err != nil {
		h.respondStoreError(w, err)
		return
	}

	worker, err := h.store.Worker(kind)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, workerToDTO(kind, worker))
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.store.RecordPayment(kindParam(r), req.Amount, req.Date)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, PaymentDTO{
		ID:         p.ID,
		Amount:     p.Amount,
		Date:       p.Date,
		RecordedAt: p.RecordedAt,
	})
}

// =============================================================================
// BALANCE
// =============================================================================

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			respondError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = n
	}

	balance, err := h.store.GetBalance(kindParam(r), year, time.Month(month))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balanceToDTO(year, month, balance))
}
