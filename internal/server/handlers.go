package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/profile"
	"github.com/claude/planforge/internal/storage"
)

// planResponse is the payload returned for an accepted plan.
type planResponse struct {
	ID        string `json:"id,omitempty"`
	Plan      any    `json:"plan"`
	Split     string `json:"split"`
	Level     string `json:"level"`
	Deficit   bool   `json:"deficit"`
	Penalties int    `json:"penalties"`
	Notes     string `json:"notes,omitempty"`
}

// rejectionResponse is the payload returned when the structural gate
// rejects a generated plan.
type rejectionResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var up profile.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result := s.planner.Generate(up)
	if !result.Accepted() {
		if s.db != nil {
			_, err := s.db.InsertRejection(r.Context(), storage.RejectionRow{
				Profile: up,
				Reason:  result.Rejection.Reason,
				Detail:  result.Rejection.Detail,
			})
			if err != nil {
				s.log.Error("storing rejection", "error", err)
			}
		}
		writeJSON(w, http.StatusUnprocessableEntity, rejectionResponse{
			Error:  "plan rejected",
			Reason: string(result.Rejection.Reason),
			Detail: result.Rejection.Detail,
		})
		return
	}

	resp := planResponse{
		Plan:      result.Plan,
		Split:     string(result.Constraints.Split),
		Level:     string(result.Constraints.Level),
		Deficit:   result.Constraints.Deficit,
		Penalties: len(result.Penalties),
	}

	if s.db != nil {
		id, err := s.db.InsertPlan(r.Context(), storage.PlanRow{
			Profile:   up,
			Plan:      result.Plan,
			Split:     string(result.Constraints.Split),
			Level:     string(result.Constraints.Level),
			Deficit:   result.Constraints.Deficit,
			Penalties: len(result.Penalties),
		})
		if err != nil {
			s.log.Error("storing plan", "error", err)
		} else {
			resp.ID = id.String()
			if _, err := s.db.InsertQualityEvents(r.Context(), id, result.Penalties); err != nil {
				s.log.Error("storing quality events", "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handlePreview resolves a profile into its effective constraints without
// generating a plan.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var up profile.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	cons := profile.Resolve(up)
	writeJSON(w, http.StatusOK, map[string]any{
		"split":                  cons.Split,
		"level":                  cons.Level,
		"declaredLevel":          cons.DeclaredLevel,
		"frequency":              cons.Frequency,
		"availableTimeMinutes":   cons.AvailableMinutes,
		"trainingLocation":       cons.Location,
		"deficit":                cons.Deficit,
		"goal":                   cons.Goal,
		"shoulderRestricted":     cons.ShoulderRestricted,
		"kneeRestricted":         cons.KneeRestricted,
		"maxExercisesPerSession": cons.Rules.MaxExercisesPerSession,
		"weeklySeriesLimit":      cons.Rules.WeeklySeriesLimit,
		"notes":                  cons.Notes,
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "persistence disabled"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid plan ID"})
		return
	}

	row, err := s.db.GetPlan(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}

	// The stored penalty count is the snapshot taken at generation time;
	// the event table is the authoritative record.
	events, err := s.db.CountQualityEvents(r.Context(), id)
	if err != nil {
		s.log.Error("counting quality events", "error", err)
	}
	writeJSON(w, http.StatusOK, struct {
		*storage.PlanRow
		QualityEvents int `json:"qualityEvents"`
	}{row, events})
}

func (s *Server) handleListRejections(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusOK, []storage.RejectionRow{})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	rows, err := s.db.ListRejections(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = []storage.RejectionRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusOK, []storage.PlanRow{})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	rows, err := s.db.ListPlans(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = []storage.PlanRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	muscle := r.URL.Query().Get("muscle")
	location := r.URL.Query().Get("location")

	if name := r.URL.Query().Get("exercise"); name != "" {
		tmpl, ok := s.catalog.Find(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown exercise: " + name})
			return
		}
		writeJSON(w, http.StatusOK, tmpl)
		return
	}

	var templates []catalog.Template
	switch {
	case muscle != "" && location != "":
		templates = s.catalog.ForMuscleAt(catalog.Muscle(muscle), catalog.Location(location))
	case muscle != "":
		templates = s.catalog.ForMuscle(catalog.Muscle(muscle))
	default:
		templates = s.catalog.All()
	}
	if templates == nil {
		templates = []catalog.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCatalogMuscles(w http.ResponseWriter, r *http.Request) {
	type muscleInfo struct {
		Name      catalog.Muscle     `json:"name"`
		Size      catalog.MuscleSize `json:"size"`
		Exercises int                `json:"exercises"`
	}
	var out []muscleInfo
	for _, m := range catalog.AllMuscles() {
		out = append(out, muscleInfo{
			Name:      m,
			Size:      catalog.SizeOf(m),
			Exercises: len(s.catalog.ForMuscle(m)),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
