package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/weighttrack/weighttrack-go/internal/middleware"
	"github.com/weighttrack/weighttrack-go/internal/model"
	"github.com/weighttrack/weighttrack-go/internal/service"
)

// WeightHandler handles HTTP requests for weight entry operations.
type WeightHandler struct {
	service *service.WeightService
}

// NewWeightHandler creates a new WeightHandler.
func NewWeightHandler(svc *service.WeightService) *WeightHandler {
	return &WeightHandler{service: svc}
}

// HandleCreate handles POST /api/v1/weights requests.
func (h *WeightHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateWeightEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeightRequired), errors.Is(err, service.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "entry": entry})
}

// HandleList handles GET /api/v1/weights requests. Supports ?limit= to cap
// the result and ?year=&month= to select one calendar month.
func (h *WeightHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := queryInt(r, "limit")
	year := queryInt(r, "year")
	month := queryInt(r, "month")
	if month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	entries, err := h.service.List(r.Context(), user.ID, limit, year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if entries == nil {
		entries = []model.WeightEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entries": entries})
}

// HandleStats handles GET /api/v1/weights/stats requests.
func (h *WeightHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.service.Stats(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": result})
}

// HandleMonthlySummary handles GET /api/v1/weights/summary requests.
// Requires ?year= and ?month= selecting one calendar month.
func (h *WeightHandler) HandleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year := queryInt(r, "year")
	month := queryInt(r, "month")

	summary, err := h.service.MonthlySummary(r.Context(), user.ID, year, month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "year and month query parameters are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "summary": summary})
}

// HandleUpdate handles PUT /api/v1/weights/{entry_id} requests.
func (h *WeightHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID := chi.URLParam(r, "entry_id")
	if entryID == "" || len(entryID) > 36 {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateWeightEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Update(r.Context(), user.ID, entryID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeightRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEntryNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entry": entry})
}

// HandleDelete handles DELETE /api/v1/weights/{entry_id} requests.
func (h *WeightHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entryID := chi.URLParam(r, "entry_id")
	if entryID == "" || len(entryID) > 36 {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, entryID); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
