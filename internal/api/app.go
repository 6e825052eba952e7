package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/chatverse/chatverse/internal/chat"
	"github.com/chatverse/chatverse/internal/config"
	"github.com/chatverse/chatverse/internal/database"
	"github.com/chatverse/chatverse/internal/stats"
)

// Metric names registered by the server and bumped by the handlers.
const (
	MetricLogins             = "Logins"
	MetricMessagesSent       = "MessagesSent"
	MetricFriendRequests     = "FriendRequests"
	MetricRecommendations    = "RecommendationsServed"
	MetricNotificationsReads = "NotificationReads"
)

type ChatApp struct {
	log        *log.Logger
	svc        *chat.Service
	db         database.ChatRepository
	stats      stats.StatsProvider
	mux        *http.Server
	signingKey []byte
}

func NewChatApp(mux *http.ServeMux, logger *log.Logger, svc *chat.Service, db database.ChatRepository, st stats.StatsProvider, cfg *config.Config) *ChatApp {
	s := &ChatApp{
		log:        logger,
		svc:        svc,
		db:         db,
		stats:      st,
		signingKey: cfg.SigningKey,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.HandleFunc("POST /api/auth/register", s.createAccount)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/session", s.authMiddleware(s.session))
	mux.Handle("GET /api/auth/logout", s.authMiddleware(s.logout))
	mux.Handle("/api/account", s.authMiddleware(s.account))
	mux.Handle("GET /api/users/{username}", s.authMiddleware(s.userProfile))
	mux.Handle("GET /api/rooms", s.authMiddleware(s.listRooms))
	mux.Handle("POST /api/rooms", s.authMiddleware(s.createRoom))
	mux.Handle("POST /api/rooms/join", s.authMiddleware(s.joinRoom))
	mux.Handle("GET /api/messages", s.authMiddleware(s.roomHistory))
	mux.Handle("GET /api/messages/direct", s.authMiddleware(s.directHistory))
	mux.Handle("POST /api/messages", s.authMiddleware(s.sendMessage))
	mux.Handle("GET /api/presence", s.authMiddleware(s.listOnline))
	mux.Handle("POST /api/presence", s.authMiddleware(s.heartbeat))
	mux.Handle("GET /api/friends", s.authMiddleware(s.listFriends))
	mux.Handle("GET /api/friends/requests", s.authMiddleware(s.listFriendRequests))
	mux.Handle("POST /api/friends/requests", s.authMiddleware(s.sendFriendRequest))
	mux.Handle("POST /api/friends/requests/{id}", s.authMiddleware(s.respondFriendRequest))
	mux.Handle("GET /api/recommendations", s.authMiddleware(s.recommendations))
	mux.Handle("GET /api/notifications", s.authMiddleware(s.listNotifications))
	mux.Handle("POST /api/notifications/read", s.authMiddleware(s.markNotificationsRead))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", requestIdHeader}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.requestIdHandler(h)
	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

// RegisterMetrics declares the counters the handlers bump. Call before
// serving traffic.
func (s *ChatApp) RegisterMetrics() {
	if s.stats == nil {
		return
	}

	for _, name := range []string{
		MetricLogins,
		MetricMessagesSent,
		MetricFriendRequests,
		MetricRecommendations,
		MetricNotificationsReads,
	} {
		s.stats.RegisterMetric(name)
	}
}

func (s *ChatApp) incr(name string) {
	if s.stats != nil {
		s.stats.Incr(name)
	}
}

func (s *ChatApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *ChatApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Printf("health check: %v", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *ChatApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *ChatApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
