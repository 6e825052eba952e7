package database

import (
	"time"

	"github.com/stretchr/testify/mock"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockChatRepository) CreateAccount(params CreateAccountParams) (Account, error) {
	args := m.Called(params)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockChatRepository) GetAccountById(id int) (Account, error) {
	args := m.Called(id)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockChatRepository) GetAccountByUsername(username string) (Account, error) {
	args := m.Called(username)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockChatRepository) UpdateProfile(params UpdateProfileParams) (Account, error) {
	args := m.Called(params)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockChatRepository) IncrementProfileViews(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockChatRepository) ListAccounts() ([]Account, error) {
	args := m.Called()
	return args.Get(0).([]Account), args.Error(1)
}
func (m *MockChatRepository) UpsertSession(params SessionParams) error {
	args := m.Called(params)
	return args.Error(0)
}
func (m *MockChatRepository) ListActiveSessions(cutoff time.Time, roomId int) ([]Account, error) {
	args := m.Called(cutoff, roomId)
	return args.Get(0).([]Account), args.Error(1)
}
func (m *MockChatRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockChatRepository) GetRoomByName(name string) (Room, error) {
	args := m.Called(name)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockChatRepository) ListRooms(publicOnly bool) ([]Room, error) {
	args := m.Called(publicOnly)
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockChatRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockChatRepository) RoomMessages(roomId, limit int) ([]Message, error) {
	args := m.Called(roomId, limit)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockChatRepository) DirectMessages(userA, userB, limit int) ([]Message, error) {
	args := m.Called(userA, userB, limit)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockChatRepository) FriendshipExists(userA, userB int) (bool, error) {
	args := m.Called(userA, userB)
	return args.Bool(0), args.Error(1)
}
func (m *MockChatRepository) CreateFriendRequest(params CreateFriendRequestParams) (FriendRequest, error) {
	args := m.Called(params)
	return args.Get(0).(FriendRequest), args.Error(1)
}
func (m *MockChatRepository) GetFriendRequestById(id int) (FriendRequest, error) {
	args := m.Called(id)
	return args.Get(0).(FriendRequest), args.Error(1)
}
func (m *MockChatRepository) ListPendingRequests(accountId int) ([]FriendRequest, error) {
	args := m.Called(accountId)
	return args.Get(0).([]FriendRequest), args.Error(1)
}
func (m *MockChatRepository) ResolveFriendRequest(id int, accept bool) error {
	args := m.Called(id, accept)
	return args.Error(0)
}
func (m *MockChatRepository) ListFriends(accountId int) ([]Friend, error) {
	args := m.Called(accountId)
	return args.Get(0).([]Friend), args.Error(1)
}
func (m *MockChatRepository) UpsertInteraction(userA, userB int, kind string) error {
	args := m.Called(userA, userB, kind)
	return args.Error(0)
}
func (m *MockChatRepository) ListInteractions(accountId int) ([]InteractionScore, error) {
	args := m.Called(accountId)
	return args.Get(0).([]InteractionScore), args.Error(1)
}
func (m *MockChatRepository) CreateNotification(accountId int, ntype, content string) (Notification, error) {
	args := m.Called(accountId, ntype, content)
	return args.Get(0).(Notification), args.Error(1)
}
func (m *MockChatRepository) ListNotifications(accountId, limit int) ([]Notification, error) {
	args := m.Called(accountId, limit)
	return args.Get(0).([]Notification), args.Error(1)
}
func (m *MockChatRepository) MarkNotificationsRead(accountId int) error {
	args := m.Called(accountId)
	return args.Error(0)
}
