package database

import "time"

func (db *PgChatRepository) CreateNotification(accountId int, ntype, content string) (Notification, error) {
	row := db.conn.QueryRow(
		"INSERT INTO notifications (account_id, notification_type, content, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, account_id, notification_type, content, is_read, created_at",
		accountId,
		ntype,
		content,
		time.Now().UTC(),
	)

	var n Notification
	err := row.Scan(
		&n.Id,
		&n.AccountId,
		&n.Type,
		&n.Content,
		&n.Read,
		&n.CreatedAt,
	)

	return n, err
}

func (db *PgChatRepository) ListNotifications(accountId, limit int) ([]Notification, error) {
	rows, err := db.conn.Query(
		"SELECT id, account_id, notification_type, content, is_read, created_at "+
			"FROM notifications WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2",
		accountId,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		err := rows.Scan(
			&n.Id,
			&n.AccountId,
			&n.Type,
			&n.Content,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (db *PgChatRepository) MarkNotificationsRead(accountId int) error {
	_, err := db.conn.Exec(
		"UPDATE notifications SET is_read = TRUE WHERE account_id = $1 AND is_read = FALSE",
		accountId,
	)

	return err
}
