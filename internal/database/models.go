package database

import "time"

type Account struct {
	Id           int
	Username     string
	EmailAddress string
	PasswordHash string
	Avatar       string
	Status       string
	Bio          string
	Interests    string
	Location     string
	ProfileViews int
	LastSeen     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Room struct {
	Id           int
	Name         string
	Description  string
	CreatedBy    string
	Private      bool
	PasswordHash string
	Category     string
	MaxUsers     int
	CreatedAt    time.Time
}

// Message is one entry in the unified message log. Exactly one of RoomId
// and RecipientId is set; zero means absent.
type Message struct {
	Id            int
	RoomId        int
	RecipientId   int
	RecipientName string
	AuthorId      int
	AuthorName    string
	MessageType   string
	Content       string
	FileData      []byte
	ReplyTo       int
	Edited        bool
	Reactions     string
	CreatedAt     time.Time
}

type Session struct {
	Id           int
	AccountId    int
	Token        string
	RoomId       int
	LastActivity time.Time
}

type FriendRequest struct {
	Id            int
	UserA         int
	UserB         int
	RequesterId   int
	RequesterName string
	Status        string
	Message       string
	SentAt        time.Time
}

// Friend is an accepted edge joined with the other participant's profile.
type Friend struct {
	Account Account
	Since   time.Time
}

type InteractionScore struct {
	Id              int
	UserA           int
	UserB           int
	Kind            string
	Strength        int
	LastInteraction time.Time
}

type Notification struct {
	Id        int
	AccountId int
	Type      string
	Content   string
	Read      bool
	CreatedAt time.Time
}

type CreateAccountParams struct {
	Username     string
	EmailAddress string
	PasswordHash string
	Avatar       string
	Bio          string
	Interests    string
	Location     string
}

type UpdateProfileParams struct {
	AccountId int
	Bio       string
	Interests string
	Location  string
}

type CreateRoomParams struct {
	Name         string
	Description  string
	CreatedBy    string
	Private      bool
	PasswordHash string
	Category     string
	MaxUsers     int
}

type CreateMessageParams struct {
	RoomId      int
	RecipientId int
	AuthorId    int
	MessageType string
	Content     string
	FileData    []byte
	ReplyTo     int
}

type SessionParams struct {
	AccountId int
	Token     string
	RoomId    int
}

type CreateFriendRequestParams struct {
	UserA       int
	UserB       int
	RequesterId int
	RecipientId int
	Message     string
	// Notification is the text appended to the recipient's notification
	// log in the same transaction as the request row.
	Notification string
}
