package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"FootyCareerwebserver/internal/domain"
)

func (a *api) handleRankingsGlobal(w http.ResponseWriter, r *http.Request) {
	if _, ok := CurrentUser(r.Context()); !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	page, err := a.rankingSvc.Global(r.Context(), r.URL.Query().Get("cursor"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if page.Entries == nil {
		page.Entries = []domain.RankingEntry{}
	}
	WriteJSON(w, http.StatusOK, page)
}

func (a *api) handleRankingsFriends(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"year": "required integer"}))
		return
	}
	month := 0
	if raw := q.Get("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil {
			WriteDomainError(w, domain.NewValidationError(map[string]string{"month": "must be an integer"}))
			return
		}
	}

	entries, err := a.rankingSvc.FriendsForPeriod(r.Context(), u.ID, domain.Period{
		Year:  year,
		Month: time.Month(month),
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.RankingEntry{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
