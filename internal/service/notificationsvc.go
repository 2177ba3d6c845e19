package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"FootyCareerwebserver/internal/domain"
	"FootyCareerwebserver/internal/notifications"
)

type NotificationTokensStore interface {
	UpsertToken(ctx context.Context, userID, token, platform string, when time.Time) (domain.NotificationToken, error)
	DeleteToken(ctx context.Context, userID, token string) error
	ListTokens(ctx context.Context, userID string) ([]domain.NotificationToken, error)
}

type NotificationUsersStore interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

type PushSender interface {
	Send(ctx context.Context, token string, msg notifications.Message) error
}

type FriendRequestNotification struct {
	RequestID   string
	RequesterID string
	AddresseeID string
}

type FriendRequestNotifier interface {
	NotifyFriendRequest(ctx context.Context, notification FriendRequestNotification) error
}

type NotificationService struct {
	Tokens NotificationTokensStore
	Users  NotificationUsersStore
	Sender PushSender
	Logger *slog.Logger
	Now    func() time.Time
}

func (s *NotificationService) RegisterToken(ctx context.Context, userID, token, platform string) (domain.NotificationToken, error) {
	if s.Tokens == nil {
		return domain.NotificationToken{}, errors.New("notifications unavailable")
	}
	token = strings.TrimSpace(token)
	platform = strings.TrimSpace(strings.ToLower(platform))
	if token == "" || platform == "" {
		return domain.NotificationToken{}, domain.NewValidationError(map[string]string{"token": "required", "platform": "required"})
	}
	switch platform {
	case "android", "ios":
	default:
		return domain.NotificationToken{}, domain.NewValidationError(map[string]string{"platform": "must be ios or android"})
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	when := s.Now().UTC().Truncate(time.Millisecond)
	return s.Tokens.UpsertToken(ctx, userID, token, platform, when)
}

func (s *NotificationService) DeleteToken(ctx context.Context, userID, token string) error {
	if s.Tokens == nil {
		return errors.New("notifications unavailable")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.NewValidationError(map[string]string{"token": "required"})
	}
	return s.Tokens.DeleteToken(ctx, userID, token)
}

func (s *NotificationService) NotifyFriendRequest(ctx context.Context, notification FriendRequestNotification) error {
	if s.Tokens == nil || s.Sender == nil || s.Users == nil {
		return nil
	}

	requester, err := s.Users.GetUserByID(ctx, notification.RequesterID)
	if err != nil {
		s.logger().Error("notifications: requester lookup failed", "err", err, "user_id", notification.RequesterID)
		return err
	}

	display := strings.TrimSpace(requester.DisplayName)
	if display == "" {
		display = requester.Username
	}
	payload := map[string]string{
		"type":         "friend_request",
		"display_name": display,
		"username":     requester.Username,
		"request_id":   notification.RequestID,
	}

	body := "You received a friend request."
	if display != "" {
		body = display + " sent you a friend request."
	}
	return s.push(ctx, notification.AddresseeID, payload, "Friend request", body)
}

// NotifyCareerMilestone pushes campaign outcomes: qualification into the
// world cup, group or knockout elimination, and a championship win.
func (s *NotificationService) NotifyCareerMilestone(ctx context.Context, userID string, milestone Milestone, campaignNumber int) error {
	if s.Tokens == nil || s.Sender == nil {
		return nil
	}

	payload := map[string]string{
		"type":            "career_milestone",
		"milestone":       string(milestone),
		"campaign_number": strconv.Itoa(campaignNumber),
	}

	var title, body string
	switch milestone {
	case MilestoneQualified:
		title = "Qualified!"
		body = "You qualified for the World Cup. The group stage awaits."
	case MilestoneChampion:
		title = "Champions!"
		body = "You won the World Cup. Defend your title when you're ready."
	default:
		title = "Campaign over"
		body = "Your campaign has ended. Start a new one to climb back."
	}
	return s.push(ctx, userID, payload, title, body)
}

// push fans a message out to every registered device, pruning tokens the
// sender reports as invalid.
func (s *NotificationService) push(ctx context.Context, userID string, payload map[string]string, title, body string) error {
	tokens, err := s.Tokens.ListTokens(ctx, userID)
	if err != nil {
		s.logger().Error("notifications: list tokens failed", "err", err, "user_id", userID)
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	dataOnlyMsg := notifications.Message{
		Data: payload,
	}
	iosAlertMsg := notifications.Message{
		Data: payload,
		Notification: &notifications.Notification{
			Title: title,
			Body:  body,
		},
	}

	for _, token := range tokens {
		msg := dataOnlyMsg
		if strings.TrimSpace(strings.ToLower(token.Platform)) == "ios" {
			msg = iosAlertMsg
		}
		if err := s.Sender.Send(ctx, token.Token, msg); err != nil {
			if errors.Is(err, notifications.ErrInvalidToken) {
				if delErr := s.Tokens.DeleteToken(ctx, userID, token.Token); delErr != nil {
					s.logger().Error("notifications: delete invalid token failed", "err", delErr, "user_id", userID)
				}
				continue
			}
			s.logger().Error("notifications: send failed", "err", err, "user_id", userID)
		}
	}

	return nil
}

func (s *NotificationService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
