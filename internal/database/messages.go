package database

import (
	"database/sql"
	"time"
)

func nullableInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func (db *PgChatRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	msgType := params.MessageType
	if msgType == "" {
		msgType = "text"
	}

	row := db.conn.QueryRow(
		"INSERT INTO messages (room_id, recipient_id, author_id, message_type, content, file_data, reply_to, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at",
		nullableInt(params.RoomId),
		nullableInt(params.RecipientId),
		params.AuthorId,
		msgType,
		params.Content,
		params.FileData,
		nullableInt(params.ReplyTo),
		time.Now().UTC(),
	)

	msg := Message{
		RoomId:      params.RoomId,
		RecipientId: params.RecipientId,
		AuthorId:    params.AuthorId,
		MessageType: msgType,
		Content:     params.Content,
		FileData:    params.FileData,
		ReplyTo:     params.ReplyTo,
	}
	err := row.Scan(&msg.Id, &msg.CreatedAt)

	return msg, err
}

const messageSelect = `
	SELECT m.id, COALESCE(m.room_id, 0), COALESCE(m.recipient_id, 0), COALESCE(r.username, ''),
		m.author_id, a.username, m.message_type, m.content, m.file_data,
		COALESCE(m.reply_to, 0), m.is_edited, m.reactions, m.created_at
	FROM messages m
	JOIN accounts a ON m.author_id = a.id
	LEFT JOIN accounts r ON m.recipient_id = r.id`

func scanMessage(row scanner) (Message, error) {
	var m Message
	err := row.Scan(
		&m.Id,
		&m.RoomId,
		&m.RecipientId,
		&m.RecipientName,
		&m.AuthorId,
		&m.AuthorName,
		&m.MessageType,
		&m.Content,
		&m.FileData,
		&m.ReplyTo,
		&m.Edited,
		&m.Reactions,
		&m.CreatedAt,
	)

	return m, err
}

func collectMessages(rows *sql.Rows) ([]Message, error) {
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}

		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// RoomMessages returns broadcast messages for a room in ascending
// timestamp order. Direct messages never appear here.
func (db *PgChatRepository) RoomMessages(roomId, limit int) ([]Message, error) {
	rows, err := db.conn.Query(
		messageSelect+" WHERE m.room_id = $1 AND m.recipient_id IS NULL ORDER BY m.created_at ASC, m.id ASC LIMIT $2",
		roomId,
		limit,
	)
	if err != nil {
		return nil, err
	}

	return collectMessages(rows)
}

// DirectMessages returns the single thread between two users regardless
// of which of them authored each message.
func (db *PgChatRepository) DirectMessages(userA, userB, limit int) ([]Message, error) {
	rows, err := db.conn.Query(
		messageSelect+` WHERE (m.author_id = $1 AND m.recipient_id = $2)
			OR (m.author_id = $2 AND m.recipient_id = $1)
		ORDER BY m.created_at ASC, m.id ASC LIMIT $3`,
		userA,
		userB,
		limit,
	)
	if err != nil {
		return nil, err
	}

	return collectMessages(rows)
}
