package adapthttp

import (
	"fmt"
	"net/http"

	"glucolog/internal/domain"
)

func (s *Server) handleSummaryDaily(w http.ResponseWriter, r *http.Request) {
	mc, ok, err := mealContextQuery(r, "mealContext")
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: mealContext is required", domain.ErrInvalidMealContext))
		return
	}
	day := s.dayQuery(r, "day")
	sum, err := s.reports.DailySummary(r.Context(), day, mc, r.URL.Query().Get("unit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"day":         day,
		"mealContext": mc,
		"summary":     sum,
	})
}

func (s *Server) handleReportWeekly(w http.ResponseWriter, r *http.Request) {
	mc, ok, err := mealContextQuery(r, "mealContext")
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		mc = domain.Fasting
	}
	rep, err := s.reports.Weekly(r.Context(), localDayString(s.today()), mc, r.URL.Query().Get("unit"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	mc, ok, err := mealContextQuery(r, "mealContext")
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		mc = domain.Fasting
	}
	month := r.URL.Query().Get("month")
	if month == "" {
		month = s.today().Format("2006-01")
	}
	marks, err := s.reports.Calendar(r.Context(), month, mc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":       month,
		"mealContext": mc,
		"days":        marks,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	day := s.dayQuery(r, "day")
	entries, err := s.reports.History(r.Context(), day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": day, "items": entries})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	mc, ok, err := mealContextQuery(r, "mealContext")
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		mc = domain.DefaultMealContext(s.today())
	}
	level, valid := domain.SanitizeGlucoseInput(r.URL.Query().Get("value"))
	if !valid {
		writeError(w, fmt.Errorf("%w: value must contain digits", domain.ErrInvalidReading))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mealContext":  mc,
		"glucoseLevel": level,
		"abnormal":     domain.IsAbnormalLevel(mc, level),
		"target":       domain.TargetText(mc),
	})
}

func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	now := s.today()
	targets := make(map[domain.MealContext]any, len(domain.MealContexts))
	for _, mc := range domain.MealContexts {
		targets[mc] = map[string]any{
			"label": mc.Label(),
			"range": domain.Thresholds[mc],
			"text":  domain.TargetText(mc),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"today":              localDayString(now),
		"greeting":           domain.Greeting(now),
		"reminder":           domain.Reminder(now),
		"defaultMealContext": domain.DefaultMealContext(now),
		"targets":            targets,
	})
}
