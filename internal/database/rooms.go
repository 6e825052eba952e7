package database

import "time"

const roomColumns = "id, name, description, created_by, is_private, password_hash, category, max_users, created_at"

func scanRoom(row scanner) (Room, error) {
	var r Room
	err := row.Scan(
		&r.Id,
		&r.Name,
		&r.Description,
		&r.CreatedBy,
		&r.Private,
		&r.PasswordHash,
		&r.Category,
		&r.MaxUsers,
		&r.CreatedAt,
	)

	return r, err
}

func (db *PgChatRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	row := db.conn.QueryRow(
		"INSERT INTO rooms (name, description, created_by, is_private, password_hash, category, max_users, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING "+roomColumns,
		params.Name,
		params.Description,
		params.CreatedBy,
		params.Private,
		params.PasswordHash,
		params.Category,
		params.MaxUsers,
		time.Now().UTC(),
	)

	return scanRoom(row)
}

func (db *PgChatRepository) GetRoomByName(name string) (Room, error) {
	row := db.conn.QueryRow(
		"SELECT "+roomColumns+" FROM rooms WHERE name = $1 LIMIT 1",
		name,
	)

	return scanRoom(row)
}

func (db *PgChatRepository) ListRooms(publicOnly bool) ([]Room, error) {
	query := "SELECT " + roomColumns + " FROM rooms"
	if publicOnly {
		query += " WHERE is_private = FALSE"
	}
	query += " ORDER BY name"

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, r)
	}

	return rooms, rows.Err()
}
