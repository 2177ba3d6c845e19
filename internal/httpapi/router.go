package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"FootyCareerwebserver/internal/auth"
	"FootyCareerwebserver/internal/service"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing func(context.Context) error

	Auth          *service.AuthService
	Friends       *service.FriendsService
	Matches       *service.MatchService
	Career        *service.CareerService
	Rankings      *service.RankingService
	Users         *service.UsersService
	Notifications *service.NotificationService
	CookieCodec   auth.CookieCodec
	CookieSecure  bool
	SessionTTL    time.Duration
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := &api{
		logger:           logger,
		isProd:           opts.IsProd,
		dbPing:           opts.DBPing,
		authSvc:          opts.Auth,
		friendsSvc:       opts.Friends,
		matchSvc:         opts.Matches,
		careerSvc:        opts.Career,
		rankingSvc:       opts.Rankings,
		usersSvc:         opts.Users,
		notificationsSvc: opts.Notifications,
		cookieCodec:      opts.CookieCodec,
		cookieSecure:     opts.CookieSecure,
		sessionTTL:       opts.SessionTTL,
		loginLimiter:     newLoginLimiter(),
	}

	publicMux := http.NewServeMux()
	apiMux := http.NewServeMux()

	publicMux.HandleFunc("GET /healthz", api.handleHealthz)

	apiMux.HandleFunc("POST /v1/auth/register", api.handleAuthRegister)
	apiMux.HandleFunc("POST /v1/auth/login", api.handleAuthLogin)
	apiMux.HandleFunc("POST /v1/auth/logout", api.requireAuth(api.handleAuthLogout))
	apiMux.HandleFunc("GET /v1/users/me", api.requireAuth(api.handleUsersMe))

	if api.usersSvc != nil {
		apiMux.HandleFunc("GET /v1/users/search", api.requireAuth(api.handleUsersSearch))
	}

	if api.friendsSvc != nil {
		apiMux.HandleFunc("GET /v1/friends", api.requireAuth(api.handleFriendsList))
		apiMux.HandleFunc("POST /v1/friends/requests", api.requireAuth(api.handleFriendsCreateRequest))
		apiMux.HandleFunc("POST /v1/friends/requests/{id}/accept", api.requireAuth(api.handleFriendsAccept))
		apiMux.HandleFunc("POST /v1/friends/requests/{id}/decline", api.requireAuth(api.handleFriendsDecline))
	}

	if api.matchSvc != nil {
		apiMux.HandleFunc("POST /v1/matches", api.requireAuth(api.handleMatchesRecord))
		apiMux.HandleFunc("GET /v1/matches", api.requireAuth(api.handleMatchesList))
		apiMux.HandleFunc("GET /v1/streaks", api.requireAuth(api.handleStreaks))
	}

	if api.careerSvc != nil {
		apiMux.HandleFunc("GET /v1/career/profile", api.requireAuth(api.handleCareerProfile))
		apiMux.HandleFunc("POST /v1/career/qualifiers", api.requireAuth(api.handleQualifiersStart))
		apiMux.HandleFunc("DELETE /v1/career/qualifiers", api.requireAuth(api.handleQualifiersAbandon))
		apiMux.HandleFunc("GET /v1/career/qualifiers/standings", api.requireAuth(api.handleQualifiersStandings))
		apiMux.HandleFunc("POST /v1/career/worldcup", api.requireAuth(api.handleWorldCupStart))
		apiMux.HandleFunc("POST /v1/career/worldcup/defend", api.requireAuth(api.handleWorldCupDefend))
		apiMux.HandleFunc("GET /v1/career/worldcup/stages", api.requireAuth(api.handleWorldCupStages))
	}

	if api.rankingSvc != nil {
		apiMux.HandleFunc("GET /v1/rankings/global", api.requireAuth(api.handleRankingsGlobal))
		apiMux.HandleFunc("GET /v1/rankings/friends", api.requireAuth(api.handleRankingsFriends))
	}

	if api.notificationsSvc != nil {
		apiMux.HandleFunc("POST /v1/notifications/tokens", api.requireAuth(api.handleNotificationsTokenUpsert))
		apiMux.HandleFunc("DELETE /v1/notifications/tokens", api.requireAuth(api.handleNotificationsTokenDelete))
	}

	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := apiMux.Handler(r)
		if pattern == "" {
			handleV1NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/") || r.URL.Path == "/v1" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		publicMux.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = RequestLogger(logger)(h)
	h = RequestID()(h)
	h = Recoverer(logger, opts.IsProd)(h)
	return h
}

func handleV1NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "not found")
}

type api struct {
	logger *slog.Logger
	isProd bool

	dbPing func(context.Context) error

	authSvc          *service.AuthService
	friendsSvc       *service.FriendsService
	matchSvc         *service.MatchService
	careerSvc        *service.CareerService
	rankingSvc       *service.RankingService
	usersSvc         *service.UsersService
	notificationsSvc *service.NotificationService
	cookieCodec      auth.CookieCodec
	cookieSecure     bool
	sessionTTL       time.Duration

	loginLimiter *loginLimiter
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
