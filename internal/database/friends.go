package database

import (
	"database/sql"
	"fmt"
	"time"
)

const upsertInteractionQuery = `
	INSERT INTO interactions (user_a, user_b, interaction_type, strength, last_interaction)
	VALUES ($1, $2, $3, 1, $4)
	ON CONFLICT (user_a, user_b, interaction_type) DO UPDATE SET
		strength = interactions.strength + 1,
		last_interaction = EXCLUDED.last_interaction`

func (db *PgChatRepository) FriendshipExists(userA, userB int) (bool, error) {
	row := db.conn.QueryRow(
		"SELECT id FROM friendships WHERE user_a = $1 AND user_b = $2 LIMIT 1",
		userA,
		userB,
	)

	var id int
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}

	return err == nil, err
}

// CreateFriendRequest inserts the pending request and the recipient's
// notification in one transaction. The pair must already be in canonical
// order; the partial unique index rejects a second pending request for
// the same pair.
func (db *PgChatRepository) CreateFriendRequest(params CreateFriendRequestParams) (FriendRequest, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return FriendRequest{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	row := tx.QueryRow(
		"INSERT INTO friend_requests (user_a, user_b, requester_id, message, sent_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, user_a, user_b, requester_id, status, message, sent_at",
		params.UserA,
		params.UserB,
		params.RequesterId,
		params.Message,
		time.Now().UTC(),
	)

	var req FriendRequest
	err = row.Scan(
		&req.Id,
		&req.UserA,
		&req.UserB,
		&req.RequesterId,
		&req.Status,
		&req.Message,
		&req.SentAt,
	)
	if err != nil {
		return FriendRequest{}, err
	}

	_, err = tx.Exec(
		"INSERT INTO notifications (account_id, notification_type, content) VALUES ($1, $2, $3)",
		params.RecipientId,
		"friend_request",
		params.Notification,
	)
	if err != nil {
		return FriendRequest{}, err
	}

	if err = tx.Commit(); err != nil {
		return FriendRequest{}, err
	}

	return req, nil
}

func (db *PgChatRepository) GetFriendRequestById(id int) (FriendRequest, error) {
	row := db.conn.QueryRow(
		`SELECT fr.id, fr.user_a, fr.user_b, fr.requester_id, a.username, fr.status, fr.message, fr.sent_at
		FROM friend_requests fr
		JOIN accounts a ON fr.requester_id = a.id
		WHERE fr.id = $1 LIMIT 1`,
		id,
	)

	var req FriendRequest
	err := row.Scan(
		&req.Id,
		&req.UserA,
		&req.UserB,
		&req.RequesterId,
		&req.RequesterName,
		&req.Status,
		&req.Message,
		&req.SentAt,
	)

	return req, err
}

func (db *PgChatRepository) ListPendingRequests(accountId int) ([]FriendRequest, error) {
	rows, err := db.conn.Query(
		`SELECT fr.id, fr.user_a, fr.user_b, fr.requester_id, a.username, fr.status, fr.message, fr.sent_at
		FROM friend_requests fr
		JOIN accounts a ON fr.requester_id = a.id
		WHERE fr.status = 'pending' AND fr.requester_id <> $1 AND (fr.user_a = $1 OR fr.user_b = $1)
		ORDER BY fr.sent_at DESC`,
		accountId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []FriendRequest
	for rows.Next() {
		var req FriendRequest
		err := rows.Scan(
			&req.Id,
			&req.UserA,
			&req.UserB,
			&req.RequesterId,
			&req.RequesterName,
			&req.Status,
			&req.Message,
			&req.SentAt,
		)
		if err != nil {
			return nil, err
		}

		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// ResolveFriendRequest flips a pending request to its terminal status.
// Accepting additionally creates the friendship edge, notifies the
// requester, and bumps the pair's friend interaction, all in the same
// transaction. Returns ErrRequestResolved when the request is no longer
// pending, sql.ErrNoRows when it does not exist.
func (db *PgChatRepository) ResolveFriendRequest(id int, accept bool) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	row := tx.QueryRow(
		"SELECT user_a, user_b, requester_id, status FROM friend_requests WHERE id = $1 FOR UPDATE",
		id,
	)

	var userA, userB, requesterId int
	var status string
	if err = row.Scan(&userA, &userB, &requesterId, &status); err != nil {
		return err
	}

	if status != "pending" {
		err = ErrRequestResolved
		return err
	}

	newStatus := "declined"
	if accept {
		newStatus = "accepted"
	}

	now := time.Now().UTC()
	_, err = tx.Exec(
		"UPDATE friend_requests SET status = $2, resolved_at = $3 WHERE id = $1",
		id,
		newStatus,
		now,
	)
	if err != nil {
		return err
	}

	if accept {
		_, err = tx.Exec(
			"INSERT INTO friendships (user_a, user_b, since) VALUES ($1, $2, $3)",
			userA,
			userB,
			now,
		)
		if err != nil {
			return err
		}

		accepterId := userA
		if requesterId == userA {
			accepterId = userB
		}

		var accepterName string
		if err = tx.QueryRow("SELECT username FROM accounts WHERE id = $1", accepterId).Scan(&accepterName); err != nil {
			return err
		}

		_, err = tx.Exec(
			"INSERT INTO notifications (account_id, notification_type, content) VALUES ($1, $2, $3)",
			requesterId,
			"friend_accepted",
			fmt.Sprintf("%s accepted your friend request!", accepterName),
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(upsertInteractionQuery, userA, userB, "friend", now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (db *PgChatRepository) ListFriends(accountId int) ([]Friend, error) {
	rows, err := db.conn.Query(
		`SELECT `+prefixedAccountColumns+`, f.since
		FROM friendships f
		JOIN accounts a ON a.id = CASE WHEN f.user_a = $1 THEN f.user_b ELSE f.user_a END
		WHERE (f.user_a = $1 OR f.user_b = $1) AND f.status = 'accepted'
		ORDER BY a.status DESC, a.last_seen DESC`,
		accountId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []Friend
	for rows.Next() {
		var f Friend
		err := rows.Scan(
			&f.Account.Id,
			&f.Account.Username,
			&f.Account.EmailAddress,
			&f.Account.PasswordHash,
			&f.Account.Avatar,
			&f.Account.Status,
			&f.Account.Bio,
			&f.Account.Interests,
			&f.Account.Location,
			&f.Account.ProfileViews,
			&f.Account.LastSeen,
			&f.Account.CreatedAt,
			&f.Account.UpdatedAt,
			&f.Since,
		)
		if err != nil {
			return nil, err
		}

		friends = append(friends, f)
	}

	return friends, rows.Err()
}
