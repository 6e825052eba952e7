package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chatverse/chatverse/internal/chat"
	"github.com/chatverse/chatverse/internal/config"
	"github.com/chatverse/chatverse/internal/database"
	"github.com/chatverse/chatverse/internal/stats"
	"github.com/chatverse/chatverse/internal/testutil"
	"github.com/chatverse/chatverse/internal/types"
)

// findCookie returns the named cookie from the recorded response, or nil.
func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func newTestApp(t *testing.T, mockRepo *database.MockChatRepository, st stats.StatsProvider) *ChatApp {
	logger := testutil.TestLogger(t)
	svc := chat.NewService(logger, mockRepo)
	cfg := &config.Config{SigningKey: []byte("test-signing-key")}
	return NewChatApp(http.NewServeMux(), logger, svc, mockRepo, st, cfg)
}

func uniqueViolation() error {
	return &pq.Error{Code: "23505"}
}

func noRows() error {
	return sql.ErrNoRows
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	buf := &bytes.Buffer{}
	assert.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

func Test_healthCheck(t *testing.T) {
	tcases := []struct {
		name    string
		mockErr error
	}{
		{
			name:    "successful health check",
			mockErr: nil,
		},
		{
			name:    "failed health check",
			mockErr: errors.New("db error"),
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockChatRepository{}
			defer mockRepo.AssertExpectations(t)
			mockRepo.On("Ping").Return(tc.mockErr).Once()

			app := newTestApp(t, mockRepo, nil)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			app.healthCheck(rr, req)

			if tc.mockErr != nil {
				assert.Equal(t, http.StatusInternalServerError, rr.Code, "expected status code to be 500")
			} else {
				assert.Equal(t, http.StatusOK, rr.Code, "expected status code to be 200")
				assert.Equal(t, "OK", rr.Body.String(), "expected response body to be 'OK'")
			}
		})
	}
}

func TestCreateAccountHandler(t *testing.T) {
	expected := database.Account{Id: 1, Username: "newuser", EmailAddress: "newuser@example.com"}

	tcases := []struct {
		name        string
		body        any
		setupMock   func(m *database.MockChatRepository)
		expectedErr *ApiError
	}{
		{
			name: "successfully creates a new account",
			body: RegisterRequest{Username: "newuser", Email: "newuser@example.com", Password: "password"},
			setupMock: func(m *database.MockChatRepository) {
				m.On("CreateAccount", mock.Anything).Return(expected, nil).Once()
			},
		},
		{
			name:        "fails with invalid json body",
			body:        "invalid json",
			setupMock:   func(m *database.MockChatRepository) {},
			expectedErr: NewBadRequestError(),
		},
		{
			name:        "fails with missing username",
			body:        RegisterRequest{Email: "newuser@example.com", Password: "password"},
			setupMock:   func(m *database.MockChatRepository) {},
			expectedErr: NewBadRequestError(),
		},
		{
			name: "fails when username is taken",
			body: RegisterRequest{Username: "newuser", Password: "password"},
			setupMock: func(m *database.MockChatRepository) {
				m.On("CreateAccount", mock.Anything).Return(database.Account{}, uniqueViolation()).Once()
			},
			expectedErr: NewConflictError(),
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockChatRepository{}
			defer mockRepo.AssertExpectations(t)
			tc.setupMock(mockRepo)

			app := newTestApp(t, mockRepo, nil)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, tc.body))
			app.createAccount(rr, req)

			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr.StatusCode, rr.Code)
				return
			}

			assert.Equal(t, http.StatusCreated, rr.Code)
			var user types.User
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&user))
			assert.Equal(t, expected.Username, user.Username)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := chat.HashPassword("password")
	assert.NoError(t, err)
	stored := database.Account{Id: 1, Username: "user", PasswordHash: hash}

	t.Run("successful login sets a token cookie and bumps the counter", func(t *testing.T) {
		mockRepo := &database.MockChatRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetAccountByUsername", stored.Username).Return(stored, nil).Once()
		mockRepo.On("UpsertSession", mock.Anything).Return(nil).Once()

		mockStats := &stats.MockStatsUpdater{}
		defer mockStats.AssertExpectations(t)
		mockStats.On("Incr", MetricLogins).Once()

		app := newTestApp(t, mockRepo, mockStats)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, LoginRequest{Username: "user", Password: "password"}))
		app.login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		cookie := findCookie(rr, tokenCookieKey)
		assert.NotNil(t, cookie, "expected token cookie to be set")
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly, "expected token cookie to be http-only")
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := &database.MockChatRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetAccountByUsername", stored.Username).Return(stored, nil).Once()

		app := newTestApp(t, mockRepo, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, LoginRequest{Username: "user", Password: "wrong"}))
		app.login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, findCookie(rr, tokenCookieKey))
	})

	t.Run("missing credentials", func(t *testing.T) {
		app := newTestApp(t, &database.MockChatRepository{}, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, LoginRequest{Username: "user"}))
		app.login(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestJoinRoomHandler(t *testing.T) {
	room := database.Room{Id: 3, Name: "general"}

	t.Run("joins a public room and moves presence", func(t *testing.T) {
		mockRepo := &database.MockChatRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetRoomByName", room.Name).Return(room, nil).Twice()
		mockRepo.On("UpsertSession", mock.MatchedBy(func(p database.SessionParams) bool {
			return p.AccountId == 1 && p.RoomId == room.Id
		})).Return(nil).Once()

		app := newTestApp(t, mockRepo, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/rooms/join", jsonBody(t, JoinRoomRequest{Name: room.Name}))
		req = req.WithContext(WithUserId(req.Context(), 1))
		app.joinRoom(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("wrong password for a private room", func(t *testing.T) {
		hash, err := chat.HashPassword("hunter2")
		assert.NoError(t, err)
		private := database.Room{Id: 4, Name: "secret", Private: true, PasswordHash: hash}

		mockRepo := &database.MockChatRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetRoomByName", private.Name).Return(private, nil).Once()

		app := newTestApp(t, mockRepo, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/rooms/join", jsonBody(t, JoinRoomRequest{Name: private.Name, Password: "wrong"}))
		req = req.WithContext(WithUserId(req.Context(), 1))
		app.joinRoom(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		app := newTestApp(t, &database.MockChatRepository{}, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/rooms/join", jsonBody(t, JoinRoomRequest{Name: room.Name}))
		app.joinRoom(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestSendMessageHandler(t *testing.T) {
	author := database.Account{Id: 1, Username: "alice"}
	room := database.Room{Id: 3, Name: "general"}

	t.Run("sends a room message", func(t *testing.T) {
		mockRepo := &database.MockChatRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetAccountById", author.Id).Return(author, nil).Once()
		mockRepo.On("GetRoomByName", room.Name).Return(room, nil).Twice()
		mockRepo.On("CreateMessage", mock.Anything).Return(database.Message{Id: 9, RoomId: room.Id, Content: "hello"}, nil).Once()
		mockRepo.On("UpsertSession", mock.Anything).Return(nil).Once()

		mockStats := &stats.MockStatsUpdater{}
		defer mockStats.AssertExpectations(t)
		mockStats.On("Incr", MetricMessagesSent).Once()

		app := newTestApp(t, mockRepo, mockStats)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages", jsonBody(t, SendMessageRequest{Room: room.Name, Content: "hello"}))
		req = req.WithContext(WithUserId(req.Context(), author.Id))
		app.sendMessage(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var msg types.Message
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&msg))
		assert.Equal(t, author.Username, msg.Author)
	})

	t.Run("rejects a message with no destination", func(t *testing.T) {
		app := newTestApp(t, &database.MockChatRepository{}, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages", jsonBody(t, SendMessageRequest{Content: "hello"}))
		req = req.WithContext(WithUserId(req.Context(), author.Id))
		app.sendMessage(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestRoomHistoryHandler(t *testing.T) {
	room := database.Room{Id: 3, Name: "general"}

	t.Run("returns history", func(t *testing.T) {
		mockRepo := &database.MockChatRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetRoomByName", room.Name).Return(room, nil).Once()
		mockRepo.On("RoomMessages", room.Id, 100).Return([]database.Message{
			{Id: 1, AuthorName: "alice", Content: "first"},
			{Id: 2, AuthorName: "bob", Content: "second"},
		}, nil).Once()

		app := newTestApp(t, mockRepo, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/messages?room=general", nil)
		app.roomHistory(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var messages []types.Message
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&messages))
		assert.Len(t, messages, 2)
		assert.Equal(t, "first", messages[0].Content)
	})

	t.Run("requires a room", func(t *testing.T) {
		app := newTestApp(t, &database.MockChatRepository{}, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
		app.roomHistory(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown room", func(t *testing.T) {
		mockRepo := &database.MockChatRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetRoomByName", "nowhere").Return(database.Room{}, noRows()).Once()

		app := newTestApp(t, mockRepo, nil)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/messages?room=nowhere", nil)
		app.roomHistory(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListOnlineHandler(t *testing.T) {
	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)
	mockRepo.On("ListActiveSessions", mock.Anything, 0).Return([]database.Account{
		{Id: 1, Username: "alice", Status: "online"},
	}, nil).Once()

	app := newTestApp(t, mockRepo, nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/presence", nil)
	app.listOnline(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var users []types.User
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&users))
	assert.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestHeartbeatHandler(t *testing.T) {
	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)
	mockRepo.On("UpsertSession", mock.MatchedBy(func(p database.SessionParams) bool {
		return p.AccountId == 1
	})).Return(nil).Once()

	app := newTestApp(t, mockRepo, nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/presence", jsonBody(t, HeartbeatRequest{}))
	req = req.WithContext(WithUserId(req.Context(), 1))
	app.heartbeat(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestUserProfileHandler(t *testing.T) {
	subject := database.Account{Id: 2, Username: "bob", ProfileViews: 5}

	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)
	mockRepo.On("GetAccountByUsername", subject.Username).Return(subject, nil).Once()
	mockRepo.On("IncrementProfileViews", subject.Id).Return(nil).Once()

	app := newTestApp(t, mockRepo, nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/bob", nil)
	req.SetPathValue("username", subject.Username)
	req = req.WithContext(WithUserId(req.Context(), 1))
	app.userProfile(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var user types.User
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&user))
	assert.Equal(t, subject.ProfileViews+1, user.ProfileViews)
}
