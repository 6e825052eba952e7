package chat

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/chatverse/chatverse/internal/database"
)

const defaultHistoryLimit = 100

type SendMessageParams struct {
	// Exactly one of Room and Target must be set.
	Room        string
	Target      string
	MessageType string
	Content     string
	FileData    []byte
	ReplyTo     int
}

// MessageStore is the append-only log unifying room broadcasts and
// direct messages.
type MessageStore struct {
	log      *log.Logger
	db       database.ChatRepository
	presence *PresenceTracker
	scorer   *Recommender
}

func NewMessageStore(logger *log.Logger, db database.ChatRepository, presence *PresenceTracker, scorer *Recommender) *MessageStore {
	return &MessageStore{log: logger, db: db, presence: presence, scorer: scorer}
}

// Send validates the destination, persists the message, forwards a
// message interaction to the scorer for direct messages, and records the
// author's heartbeat.
func (m *MessageStore) Send(authorId int, params SendMessageParams) (database.Message, error) {
	if (params.Room == "") == (params.Target == "") {
		return database.Message{}, fmt.Errorf("%w: message requires exactly one destination", ErrInvalidState)
	}

	author, err := m.db.GetAccountById(authorId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.Message{}, ErrNotFound
		}
		return database.Message{}, fmt.Errorf("get author: %w", err)
	}

	createParams := database.CreateMessageParams{
		AuthorId:    authorId,
		MessageType: params.MessageType,
		Content:     params.Content,
		FileData:    params.FileData,
		ReplyTo:     params.ReplyTo,
	}

	var target database.Account
	if params.Room != "" {
		room, err := m.db.GetRoomByName(params.Room)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return database.Message{}, fmt.Errorf("%w: room %q", ErrNotFound, params.Room)
			}
			return database.Message{}, fmt.Errorf("get room: %w", err)
		}
		createParams.RoomId = room.Id
	} else {
		target, err = m.db.GetAccountByUsername(params.Target)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return database.Message{}, fmt.Errorf("%w: user %q", ErrNotFound, params.Target)
			}
			return database.Message{}, fmt.Errorf("get target: %w", err)
		}
		createParams.RecipientId = target.Id
	}

	msg, err := m.db.CreateMessage(createParams)
	if err != nil {
		return database.Message{}, fmt.Errorf("create message: %w", err)
	}
	msg.AuthorName = author.Username
	msg.RecipientName = target.Username

	if createParams.RecipientId != 0 {
		if err := m.scorer.Record(author, target, "message"); err != nil {
			return database.Message{}, fmt.Errorf("record interaction: %w", err)
		}
	}

	if err := m.presence.Touch(authorId, params.Room); err != nil {
		return database.Message{}, fmt.Errorf("heartbeat: %w", err)
	}

	return msg, nil
}

// History returns a room's broadcast messages in ascending timestamp
// order, capped at limit (default 100).
func (m *MessageStore) History(room string, limit int) ([]database.Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	r, err := m.db.GetRoomByName(room)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: room %q", ErrNotFound, room)
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	messages, err := m.db.RoomMessages(r.Id, limit)
	if err != nil {
		return nil, fmt.Errorf("room messages: %w", err)
	}

	return messages, nil
}

// DirectHistory returns the single thread between the caller and
// partner, ascending. A direct pair has one logical thread, so there is
// no room filter.
func (m *MessageStore) DirectHistory(accountId int, partner string, limit int) ([]database.Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	other, err := m.db.GetAccountByUsername(partner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, partner)
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}

	messages, err := m.db.DirectMessages(accountId, other.Id, limit)
	if err != nil {
		return nil, fmt.Errorf("direct messages: %w", err)
	}

	return messages, nil
}
