package chat

import (
	"fmt"
	"log"

	"github.com/chatverse/chatverse/internal/database"
)

const defaultNotificationLimit = 20

// NotificationLog is an append-only log of fire-and-forget events
// surfaced to a user. The read flag is the only mutable field.
type NotificationLog struct {
	log *log.Logger
	db  database.ChatRepository
}

func NewNotificationLog(logger *log.Logger, db database.ChatRepository) *NotificationLog {
	return &NotificationLog{log: logger, db: db}
}

func (n *NotificationLog) Append(accountId int, ntype, content string) (database.Notification, error) {
	notif, err := n.db.CreateNotification(accountId, ntype, content)
	if err != nil {
		return database.Notification{}, fmt.Errorf("create notification: %w", err)
	}

	return notif, nil
}

// List returns the most recent notifications first, capped at limit
// (default 20).
func (n *NotificationLog) List(accountId, limit int) ([]database.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	notifications, err := n.db.ListNotifications(accountId, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}

// MarkAllRead flips every unread notification for the user to read.
// Idempotent.
func (n *NotificationLog) MarkAllRead(accountId int) error {
	if err := n.db.MarkNotificationsRead(accountId); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}

	return nil
}
