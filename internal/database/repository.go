package database

import "time"

type ChatRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (Account, error)
	GetAccountById(id int) (Account, error)
	GetAccountByUsername(username string) (Account, error)
	UpdateProfile(params UpdateProfileParams) (Account, error)
	IncrementProfileViews(id int) error
	ListAccounts() ([]Account, error)
	UpsertSession(params SessionParams) error
	ListActiveSessions(cutoff time.Time, roomId int) ([]Account, error)
	CreateRoom(params CreateRoomParams) (Room, error)
	GetRoomByName(name string) (Room, error)
	ListRooms(publicOnly bool) ([]Room, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	RoomMessages(roomId, limit int) ([]Message, error)
	DirectMessages(userA, userB, limit int) ([]Message, error)
	FriendshipExists(userA, userB int) (bool, error)
	CreateFriendRequest(params CreateFriendRequestParams) (FriendRequest, error)
	GetFriendRequestById(id int) (FriendRequest, error)
	ListPendingRequests(accountId int) ([]FriendRequest, error)
	ResolveFriendRequest(id int, accept bool) error
	ListFriends(accountId int) ([]Friend, error)
	UpsertInteraction(userA, userB int, kind string) error
	ListInteractions(accountId int) ([]InteractionScore, error)
	CreateNotification(accountId int, ntype, content string) (Notification, error)
	ListNotifications(accountId, limit int) ([]Notification, error)
	MarkNotificationsRead(accountId int) error
}
