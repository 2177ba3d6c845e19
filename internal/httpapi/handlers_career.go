package httpapi

import (
	"net/http"
	"strings"

	"FootyCareerwebserver/internal/domain"
)

func (a *api) handleCareerProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	p, err := a.careerSvc.Profile(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

type startQualifiersRequest struct {
	ConfederationID string `json:"confederation_id"`
}

func (a *api) handleQualifiersStart(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req startQualifiersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}
	req.ConfederationID = strings.TrimSpace(req.ConfederationID)
	if req.ConfederationID == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"confederation_id": "required"}))
		return
	}

	q, err := a.careerSvc.StartQualifiers(r.Context(), u.ID, req.ConfederationID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"qualifiers": q})
}

func (a *api) handleQualifiersAbandon(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	q, err := a.careerSvc.AbandonQualifiers(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"qualifiers": q})
}

func (a *api) handleQualifiersStandings(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	rows, err := a.careerSvc.Standings(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if rows == nil {
		rows = []domain.StandingsRow{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"standings": rows})
}

func (a *api) handleWorldCupStart(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	c, err := a.careerSvc.StartWorldCup(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"world_cup": c})
}

func (a *api) handleWorldCupDefend(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	c, err := a.careerSvc.DefendTitle(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"world_cup": c})
}

func (a *api) handleWorldCupStages(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	stages, err := a.careerSvc.WorldCupStages(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"stages": stages})
}
