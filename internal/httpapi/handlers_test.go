package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"FootyCareerwebserver/internal/career"
	"FootyCareerwebserver/internal/domain"
	"FootyCareerwebserver/internal/service"
)

type stubMatchesStore struct {
	created []domain.Match
	listed  []domain.Match
	err     error
}

func (s *stubMatchesStore) CreateMatch(_ context.Context, m domain.Match) error {
	s.created = append(s.created, m)
	return s.err
}

func (s *stubMatchesStore) ListMatchesForUser(_ context.Context, _ string, _ int) ([]domain.Match, error) {
	return s.listed, s.err
}

type stubMatchApplier struct {
	mode   career.Mode
	points int
	err    error
}

func (s *stubMatchApplier) ApplyMatch(_ context.Context, _ string, _ domain.Match) (career.Mode, int, error) {
	return s.mode, s.points, s.err
}

type stubProfilesStore struct {
	profile domain.CareerProfile
	err     error
}

func (s *stubProfilesStore) GetProfile(_ context.Context, _ string) (domain.CareerProfile, error) {
	return s.profile, s.err
}

func (s *stubProfilesStore) UpdateProfile(_ context.Context, _ string, _ domain.CareerProfileUpdate) error {
	return s.err
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	u := domain.User{ID: "u1", Username: "striker", Status: domain.UserStatusActive}
	return req.WithContext(context.WithValue(req.Context(), authUserKey, u))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return env.Error.Code
}

func TestHandleMatchesRecordCreatesMatch(t *testing.T) {
	store := &stubMatchesStore{}
	a := &api{matchSvc: &service.MatchService{
		Matches: store,
		Career:  &stubMatchApplier{mode: career.ModeRegular, points: 5},
		Now:     func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	}}

	rec := httptest.NewRecorder()
	a.handleMatchesRecord(rec, authedRequest(http.MethodPost, "/v1/matches",
		`{"date":"2025-03-01","result":"win","goals":1,"assists":1}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d matches, want 1", len(store.created))
	}
	var resp recordMatchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Mode != "regular" || resp.Points != 5 {
		t.Fatalf("mode/points = %s/%d, want regular/5", resp.Mode, resp.Points)
	}
	if resp.Match.ID == "" {
		t.Fatal("match id not set")
	}
}

func TestHandleMatchesRecordRejectsBadResult(t *testing.T) {
	a := &api{matchSvc: &service.MatchService{
		Matches: &stubMatchesStore{},
		Career:  &stubMatchApplier{},
	}}

	rec := httptest.NewRecorder()
	a.handleMatchesRecord(rec, authedRequest(http.MethodPost, "/v1/matches",
		`{"result":"victory","goals":1}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, rec); code != "validation_error" {
		t.Fatalf("error code = %q, want validation_error", code)
	}
}

func TestHandleMatchesRecordRejectsBadDate(t *testing.T) {
	a := &api{matchSvc: &service.MatchService{
		Matches: &stubMatchesStore{},
		Career:  &stubMatchApplier{},
	}}

	rec := httptest.NewRecorder()
	a.handleMatchesRecord(rec, authedRequest(http.MethodPost, "/v1/matches",
		`{"date":"yesterday","result":"win"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleMatchesRecordRequiresAuth(t *testing.T) {
	a := &api{matchSvc: &service.MatchService{
		Matches: &stubMatchesStore{},
		Career:  &stubMatchApplier{},
	}}

	rec := httptest.NewRecorder()
	a.handleMatchesRecord(rec, httptest.NewRequest(http.MethodPost, "/v1/matches", strings.NewReader(`{}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleCareerProfileReturnsProfile(t *testing.T) {
	a := &api{careerSvc: &service.CareerService{
		Profiles: &stubProfilesStore{profile: domain.CareerProfile{
			UserID:       "u1",
			CareerPoints: 42,
			Level:        3,
			Active:       domain.NoCampaign(),
		}},
	}}

	rec := httptest.NewRecorder()
	a.handleCareerProfile(rec, authedRequest(http.MethodGet, "/v1/career/profile", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body)
	}
	var resp struct {
		CareerPoints int `json:"career_points"`
		Level        int `json:"level"`
		Active       struct {
			Kind string `json:"kind"`
		} `json:"active_campaign"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CareerPoints != 42 || resp.Level != 3 || resp.Active.Kind != "none" {
		t.Fatalf("unexpected profile payload: %+v", resp)
	}
}

func TestHandleQualifiersStartRejectsUnknownConfederation(t *testing.T) {
	a := &api{careerSvc: &service.CareerService{
		Profiles:       &stubProfilesStore{profile: domain.CareerProfile{Active: domain.NoCampaign()}},
		Confederations: career.Confederations{},
	}}

	rec := httptest.NewRecorder()
	a.handleQualifiersStart(rec, authedRequest(http.MethodPost, "/v1/career/qualifiers",
		`{"confederation_id":"atlantis"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleQualifiersAbandonWithoutCampaign(t *testing.T) {
	a := &api{careerSvc: &service.CareerService{
		Profiles: &stubProfilesStore{profile: domain.CareerProfile{Active: domain.NoCampaign()}},
	}}

	rec := httptest.NewRecorder()
	a.handleQualifiersAbandon(rec, authedRequest(http.MethodDelete, "/v1/career/qualifiers", ""))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if code := decodeErrorCode(t, rec); code != "no_campaign" {
		t.Fatalf("error code = %q, want no_campaign", code)
	}
}
