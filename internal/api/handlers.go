package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/chatverse/chatverse/internal/chat"
	"github.com/chatverse/chatverse/internal/database"
	"github.com/chatverse/chatverse/internal/types"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Bio       string `json:"bio"`
	Interests string `json:"interests"`
	Location  string `json:"location"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Bio       string `json:"bio"`
	Interests string `json:"interests"`
	Location  string `json:"location"`
}

type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Private     bool   `json:"private"`
	Password    string `json:"password"`
	MaxUsers    int    `json:"max_users"`
}

type JoinRoomRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SendMessageRequest struct {
	Room        string `json:"room"`
	Target      string `json:"target"`
	MessageType string `json:"message_type"`
	Content     string `json:"content"`
	FileData    []byte `json:"file_data"`
	ReplyTo     int    `json:"reply_to"`
}

type HeartbeatRequest struct {
	Room string `json:"room"`
}

func userResponse(acct database.Account) types.User {
	return types.User{
		Id:           acct.Id,
		Username:     acct.Username,
		EmailAddress: acct.EmailAddress,
		Avatar:       acct.Avatar,
		Status:       acct.Status,
		Bio:          acct.Bio,
		Interests:    acct.Interests,
		Location:     acct.Location,
		ProfileViews: acct.ProfileViews,
		LastSeen:     acct.LastSeen,
		CreatedAt:    acct.CreatedAt,
	}
}

func roomResponse(room database.Room) types.Room {
	return types.Room{
		Id:          room.Id,
		Name:        room.Name,
		Description: room.Description,
		CreatedBy:   room.CreatedBy,
		Private:     room.Private,
		Category:    room.Category,
		MaxUsers:    room.MaxUsers,
		CreatedAt:   room.CreatedAt,
	}
}

func messageResponse(msg database.Message) types.Message {
	return types.Message{
		Id:          msg.Id,
		Author:      msg.AuthorName,
		Target:      msg.RecipientName,
		MessageType: msg.MessageType,
		Content:     msg.Content,
		FileData:    msg.FileData,
		ReplyTo:     msg.ReplyTo,
		Edited:      msg.Edited,
		Reactions:   msg.Reactions,
		Timestamp:   msg.CreatedAt,
	}
}

func (s *ChatApp) createAccount(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Username == "" || req.Password == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	acct, err := s.svc.Accounts.Register(chat.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Bio:       req.Bio,
		Interests: req.Interests,
		Location:  req.Location,
	})
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, userResponse(acct))
}

func (s *ChatApp) login(w http.ResponseWriter, r *http.Request) {
	var lr LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&lr); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if lr.Username == "" || lr.Password == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	acct, err := s.svc.Accounts.Authenticate(lr.Username, lr.Password)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	token, err := s.createJwtForSession(acct, defaultJwtExpiration)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	http.SetCookie(w, createJwtCookie(token, defaultJwtExpiration))
	s.incr(MetricLogins)

	s.writeJson(w, http.StatusOK, userResponse(acct))
}

func (s *ChatApp) logout(w http.ResponseWriter, _ *http.Request) {
	// instruct browser to delete cookie by overwriting it with an expired one
	http.SetCookie(w, createJwtCookie("", -time.Hour))
	w.WriteHeader(http.StatusNoContent)
}

func (s *ChatApp) session(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	acct, err := s.svc.Accounts.Get(userId)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, userResponse(acct))
}

func (s *ChatApp) account(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	switch r.Method {
	case http.MethodGet:
		acct, err := s.svc.Accounts.Get(userId)
		if err != nil {
			errResp := mapError(err)
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		s.writeJson(w, http.StatusOK, userResponse(acct))
	case http.MethodPut:
		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errResp := NewBadRequestError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		acct, err := s.svc.Accounts.UpdateProfile(database.UpdateProfileParams{
			AccountId: userId,
			Bio:       req.Bio,
			Interests: req.Interests,
			Location:  req.Location,
		})
		if err != nil {
			errResp := mapError(err)
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		s.writeJson(w, http.StatusOK, userResponse(acct))
	default:
		errResp := NewMethodNotAllowedError()
		s.writeJson(w, errResp.StatusCode, errResp)
	}
}

func (s *ChatApp) userProfile(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	username := r.PathValue("username")
	if username == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	acct, err := s.svc.Accounts.Profile(userId, username)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, userResponse(acct))
}

func (s *ChatApp) listRooms(w http.ResponseWriter, r *http.Request) {
	publicOnly := r.URL.Query().Get("public") == "true"

	rooms, err := s.svc.Rooms.List(publicOnly)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := make([]types.Room, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, roomResponse(room))
	}

	s.writeJson(w, http.StatusOK, resp)
}

func (s *ChatApp) createRoom(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	creator, err := s.svc.Accounts.Get(userId)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	room, err := s.svc.Rooms.Create(creator.Username, chat.CreateRoomParams{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Private:     req.Private,
		Password:    req.Password,
		MaxUsers:    req.MaxUsers,
	})
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, roomResponse(room))
}

// joinRoom verifies private-room entry and moves the caller's presence
// into the room.
func (s *ChatApp) joinRoom(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.svc.Rooms.CheckPassword(req.Name, req.Password); err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.svc.Presence.Touch(userId, req.Name); err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func limitParam(r *http.Request) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, nil
	}

	return strconv.Atoi(limitStr)
}

func (s *ChatApp) roomHistory(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	if room == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	limit, err := limitParam(r)
	if err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	messages, err := s.svc.Messages.History(room, limit)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := make([]types.Message, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, messageResponse(msg))
	}

	s.writeJson(w, http.StatusOK, resp)
}

func (s *ChatApp) directHistory(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	partner := r.URL.Query().Get("user")
	if partner == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	limit, err := limitParam(r)
	if err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	messages, err := s.svc.Messages.DirectHistory(userId, partner, limit)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := make([]types.Message, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, messageResponse(msg))
	}

	s.writeJson(w, http.StatusOK, resp)
}

func (s *ChatApp) sendMessage(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	msg, err := s.svc.Messages.Send(userId, chat.SendMessageParams{
		Room:        req.Room,
		Target:      req.Target,
		MessageType: req.MessageType,
		Content:     req.Content,
		FileData:    req.FileData,
		ReplyTo:     req.ReplyTo,
	})
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.incr(MetricMessagesSent)
	s.writeJson(w, http.StatusCreated, messageResponse(msg))
}

func (s *ChatApp) listOnline(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")

	accounts, err := s.svc.Presence.ListOnline(room)
	if err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	resp := make([]types.User, 0, len(accounts))
	for _, acct := range accounts {
		resp = append(resp, userResponse(acct))
	}

	s.writeJson(w, http.StatusOK, resp)
}

func (s *ChatApp) heartbeat(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.svc.Presence.Touch(userId, req.Room); err != nil {
		errResp := mapError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
