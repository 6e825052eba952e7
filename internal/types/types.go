package types

import (
	"time"
)

type User struct {
	Id           int       `json:"id"`
	Username     string    `json:"username"`
	EmailAddress string    `json:"email_address,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Status       string    `json:"status,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Interests    string    `json:"interests,omitempty"`
	Location     string    `json:"location,omitempty"`
	ProfileViews int       `json:"profile_views,omitempty"`
	LastSeen     time.Time `json:"last_seen,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

type Room struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	Private     bool      `json:"private"`
	Category    string    `json:"category"`
	MaxUsers    int       `json:"max_users"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Message struct {
	Id          int       `json:"id"`
	Author      string    `json:"author"`
	Target      string    `json:"target,omitempty"`
	MessageType string    `json:"message_type"`
	Content     string    `json:"content"`
	FileData    []byte    `json:"file_data,omitempty"`
	ReplyTo     int       `json:"reply_to,omitempty"`
	Edited      bool      `json:"edited"`
	Reactions   string    `json:"reactions,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type FriendRequest struct {
	Id      int       `json:"id"`
	From    string    `json:"from"`
	Message string    `json:"message,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

type Friend struct {
	User  User      `json:"user"`
	Since time.Time `json:"since"`
}

type Recommendation struct {
	User        User `json:"user"`
	SharedKinds int  `json:"shared_kinds"`
}

type Notification struct {
	Id        int       `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
