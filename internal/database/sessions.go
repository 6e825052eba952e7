package database

import "time"

// UpsertSession records a heartbeat. Each account holds at most one
// session row; repeated heartbeats update it in place. The token is only
// assigned on first insert. The account's status and last_seen are
// refreshed in the same transaction.
func (db *PgChatRepository) UpsertSession(params SessionParams) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	_, err = tx.Exec(
		`INSERT INTO sessions (account_id, token, room_id, last_activity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO UPDATE SET
			room_id = COALESCE(EXCLUDED.room_id, sessions.room_id),
			last_activity = EXCLUDED.last_activity`,
		params.AccountId,
		params.Token,
		nullableInt(params.RoomId),
		now,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		"UPDATE accounts SET status = 'online', last_seen = $2 WHERE id = $1",
		params.AccountId,
		now,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListActiveSessions returns the accounts whose last heartbeat is at or
// after cutoff. A non-zero roomId restricts the result to sessions
// currently in that room.
func (db *PgChatRepository) ListActiveSessions(cutoff time.Time, roomId int) ([]Account, error) {
	query := "SELECT DISTINCT " + prefixedAccountColumns + " FROM accounts a " +
		"JOIN sessions s ON a.id = s.account_id WHERE s.last_activity >= $1"
	args := []any{cutoff}

	if roomId != 0 {
		query += " AND s.room_id = $2"
		args = append(args, roomId)
	}
	query += " ORDER BY a.username"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}
