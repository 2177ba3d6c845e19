package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"FootyCareerwebserver/internal/domain"
	"FootyCareerwebserver/internal/service"
)

type recordMatchRequest struct {
	Date    string `json:"date"`
	Result  string `json:"result"`
	Goals   int    `json:"goals"`
	Assists int    `json:"assists"`
}

type recordMatchResponse struct {
	Match  domain.Match `json:"match"`
	Mode   string       `json:"mode"`
	Points int          `json:"points"`
}

// parseMatchDate accepts a plain calendar date or a full RFC 3339 timestamp.
// An empty string is fine: undated matches always score in regular mode.
func parseMatchDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (a *api) handleMatchesRecord(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req recordMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	date, err := parseMatchDate(req.Date)
	if err != nil {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"date": "must be YYYY-MM-DD or RFC 3339"}))
		return
	}

	rec, err := a.matchSvc.RecordMatch(r.Context(), u.ID, service.RecordMatchParams{
		Date:    date,
		Result:  req.Result,
		Goals:   req.Goals,
		Assists: req.Assists,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, recordMatchResponse{
		Match:  rec.Match,
		Mode:   string(rec.Mode),
		Points: rec.Points,
	})
}

func (a *api) handleMatchesList(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	limit, err := queryLimit(r, 50)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	matches, err := a.matchSvc.ListMatches(r.Context(), u.ID, limit)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (a *api) handleStreaks(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	limit, err := queryLimit(r, 30)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	summary, err := a.matchSvc.Streaks(r.Context(), u.ID, limit)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func queryLimit(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError(map[string]string{"limit": "must be a positive integer"})
	}
	return n, nil
}
