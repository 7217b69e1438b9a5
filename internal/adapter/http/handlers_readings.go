package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"glucolog/internal/app"
	"glucolog/internal/domain"
)

type createReadingBody struct {
	app.RecordInput
	// Input is the raw text of the entry field; it is used when
	// glucoseLevel is absent.
	Input string `json:"input"`
}

func (s *Server) handleReadingsCreate(w http.ResponseWriter, r *http.Request) {
	var body createReadingBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	now := s.today()
	in := body.RecordInput
	if in.Day == "" {
		in.Day = localDayString(now)
	}
	if in.Time == "" {
		in.Time = now.Format(domain.TimeLayout)
	}
	if in.MealContext == "" {
		in.MealContext = string(domain.DefaultMealContext(now))
	}
	if in.GlucoseLevel == nil && body.Input != "" {
		if v, ok := domain.SanitizeGlucoseInput(body.Input); ok {
			in.GlucoseLevel = &v
		}
	}

	rec, err := s.readings.Record(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleReadingsList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	mc, hasMC, err := mealContextQuery(r, "mealContext")
	if err != nil {
		writeError(w, err)
		return
	}
	var filter *domain.MealContext
	if hasMC {
		filter = &mc
	}

	var items []domain.Reading
	switch {
	case q.Get("from") != "" || q.Get("to") != "":
		if q.Get("from") == "" || q.Get("to") == "" {
			writeError(w, fmt.Errorf("%w: from and to must be given together", domain.ErrInvalidDay))
			return
		}
		items, err = s.readings.ListRange(ctx, q.Get("from"), q.Get("to"), filter)
	default:
		items, err = s.readings.ListDay(ctx, s.dayQuery(r, "day"), filter)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.Reading{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleReadingsRecent(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 20)
	items, err := s.readings.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleReadingEvents streams one server-sent event per append until the
// client goes away.
func (s *Server) handleReadingEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, errors.New("streaming unsupported"))
		return
	}

	events, cancel := s.readings.Subscribe(16)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.log.ErrorContext(r.Context(), "encode store event", "err", err)
				return
			}
			if _, err := fmt.Fprintf(w, "id: %d\nevent: reading\ndata: %s\n\n", ev.Version, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
