package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chatverse/chatverse/internal/types"
)

type SendFriendRequestRequest struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type RespondFriendRequestRequest struct {
	Action string `json:"action"`
}

func (s *ChatApp) listFriends(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	friends, err := s.svc.Friends.Friends(userId)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := make([]types.Friend, 0, len(friends))
	for _, f := range friends {
		resp = append(resp, types.Friend{
			User:  userResponse(f.Account),
			Since: f.Since,
		})
	}

	s.writeJson(w, http.StatusOK, resp)
}

func (s *ChatApp) listFriendRequests(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	requests, err := s.svc.Friends.PendingRequests(userId)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := make([]types.FriendRequest, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, types.FriendRequest{
			Id:      req.Id,
			From:    req.RequesterName,
			Message: req.Message,
			SentAt:  req.SentAt,
		})
	}

	s.writeJson(w, http.StatusOK, resp)
}

func (s *ChatApp) sendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req SendFriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	fr, err := s.svc.Friends.SendRequest(userId, req.Username, req.Message)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.incr(MetricFriendRequests)

	s.writeJson(w, http.StatusCreated, types.FriendRequest{
		Id:      fr.Id,
		From:    fr.RequesterName,
		Message: fr.Message,
		SentAt:  fr.SentAt,
	})
}

func (s *ChatApp) respondFriendRequest(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	requestId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req RespondFriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var accept bool
	switch req.Action {
	case "accept":
		accept = true
	case "decline":
		accept = false
	default:
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.svc.Friends.Respond(userId, requestId, accept); err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *ChatApp) recommendations(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	limit, err := limitParam(r)
	if err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	recs, err := s.svc.Recommender.Recommend(userId, limit)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := make([]types.Recommendation, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, types.Recommendation{
			User:        userResponse(rec.Account),
			SharedKinds: rec.SharedKinds,
		})
	}

	s.incr(MetricRecommendations)
	s.writeJson(w, http.StatusOK, resp)
}

func (s *ChatApp) listNotifications(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	limit, err := limitParam(r)
	if err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	notifications, err := s.svc.Notifications.List(userId, limit)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := make([]types.Notification, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, types.Notification{
			Id:        n.Id,
			Type:      n.Type,
			Content:   n.Content,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, resp)
}

func (s *ChatApp) markNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.svc.Notifications.MarkAllRead(userId); err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.incr(MetricNotificationsReads)
	w.WriteHeader(http.StatusNoContent)
}
