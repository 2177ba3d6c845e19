package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"FootyCareerwebserver/internal/domain"
	"FootyCareerwebserver/internal/service"
)

func (a *api) handleFriendsList(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	overview, err := a.friendsSvc.ListOverview(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if overview.Friends == nil {
		overview.Friends = []domain.UserSummary{}
	}
	if overview.Incoming == nil {
		overview.Incoming = []domain.FriendRequest{}
	}
	if overview.Outgoing == nil {
		overview.Outgoing = []domain.FriendRequest{}
	}
	WriteJSON(w, http.StatusOK, overview)
}

type createFriendRequestRequest struct {
	Username string `json:"username"`
}

func (a *api) handleFriendsCreateRequest(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req createFriendRequestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}
	req.Username = normalizeUsername(req.Username)
	if req.Username == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"username": "required"}))
		return
	}

	fr, err := a.friendsSvc.CreateRequest(r.Context(), u.ID, req.Username)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	if a.notificationsSvc != nil {
		go func(n service.FriendRequestNotification) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.notificationsSvc.NotifyFriendRequest(ctx, n); err != nil {
				a.logger.Warn("friend request push failed", "request_id", n.RequestID, "error", err)
			}
		}(service.FriendRequestNotification{
			RequestID:   fr.ID,
			RequesterID: u.ID,
			AddresseeID: fr.User.ID,
		})
	}

	WriteJSON(w, http.StatusCreated, fr)
}

func (a *api) handleFriendsAccept(w http.ResponseWriter, r *http.Request) {
	a.resolveFriendRequest(w, r, a.friendsSvc.Accept)
}

func (a *api) handleFriendsDecline(w http.ResponseWriter, r *http.Request) {
	a.resolveFriendRequest(w, r, a.friendsSvc.Decline)
}

func (a *api) resolveFriendRequest(w http.ResponseWriter, r *http.Request, resolve func(ctx context.Context, addresseeID, requestID string) error) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	requestID := strings.TrimSpace(r.PathValue("id"))
	if requestID == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"id": "required"}))
		return
	}

	if err := resolve(r.Context(), u.ID, requestID); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
