package database

import "time"

// UpsertInteraction bumps the strength of a canonical (pair, kind) score
// row by one, inserting it at strength 1 if absent. The increment happens
// in a single statement so concurrent calls never lose updates.
func (db *PgChatRepository) UpsertInteraction(userA, userB int, kind string) error {
	_, err := db.conn.Exec(upsertInteractionQuery, userA, userB, kind, time.Now().UTC())
	return err
}

// ListInteractions returns every score row involving the account,
// whichever side of the canonical pair it occupies.
func (db *PgChatRepository) ListInteractions(accountId int) ([]InteractionScore, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_a, user_b, interaction_type, strength, last_interaction "+
			"FROM interactions WHERE user_a = $1 OR user_b = $1",
		accountId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []InteractionScore
	for rows.Next() {
		var s InteractionScore
		err := rows.Scan(
			&s.Id,
			&s.UserA,
			&s.UserB,
			&s.Kind,
			&s.Strength,
			&s.LastInteraction,
		)
		if err != nil {
			return nil, err
		}

		scores = append(scores, s)
	}

	return scores, rows.Err()
}
