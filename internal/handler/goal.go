package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/weighttrack/weighttrack-go/internal/middleware"
	"github.com/weighttrack/weighttrack-go/internal/model"
	"github.com/weighttrack/weighttrack-go/internal/service"
)

// GoalHandler handles HTTP requests for goal operations.
type GoalHandler struct {
	service *service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(svc *service.GoalService) *GoalHandler {
	return &GoalHandler{service: svc}
}

// HandleCreate handles POST /api/v1/goals requests. The new goal becomes
// the user's single active goal; earlier goals move to history.
func (h *GoalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTargetWeightRequired), errors.Is(err, service.ErrInvalidDeadline):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "goal": goal})
}

// HandleActive handles GET /api/v1/goals/active requests. Having no active
// goal is a normal state and returns a null goal, not an error.
func (h *GoalHandler) HandleActive(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	goal, err := h.service.Active(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "goal": goal})
}

// HandleHistory handles GET /api/v1/goals requests.
func (h *GoalHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	goals, err := h.service.History(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if goals == nil {
		goals = []model.Goal{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "goals": goals})
}

// HandleProgress handles GET /api/v1/goals/active/progress requests.
func (h *GoalHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	progress, err := h.service.Progress(r.Context(), user.ID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			writeError(w, http.StatusNotFound, "no active goal")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "progress": progress})
}

// HandleUpdate handles PUT /api/v1/goals/{goal_id} requests.
func (h *GoalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	goalID := chi.URLParam(r, "goal_id")
	if goalID == "" || len(goalID) > 36 {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.service.Update(r.Context(), user.ID, goalID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTargetWeightRequired), errors.Is(err, service.ErrInvalidDeadline):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGoalNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "goal": goal})
}

// HandleDelete handles DELETE /api/v1/goals/{goal_id} requests.
func (h *GoalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	goalID := chi.URLParam(r, "goal_id")
	if goalID == "" || len(goalID) > 36 {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, goalID); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
