package database

import "time"

const accountColumns = "id, username, COALESCE(email, ''), password_hash, avatar, status, bio, " +
	"interests, location, profile_views, last_seen, created_at, updated_at"

const prefixedAccountColumns = "a.id, a.username, COALESCE(a.email, ''), a.password_hash, a.avatar, a.status, a.bio, " +
	"a.interests, a.location, a.profile_views, a.last_seen, a.created_at, a.updated_at"

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (Account, error) {
	var a Account
	err := row.Scan(
		&a.Id,
		&a.Username,
		&a.EmailAddress,
		&a.PasswordHash,
		&a.Avatar,
		&a.Status,
		&a.Bio,
		&a.Interests,
		&a.Location,
		&a.ProfileViews,
		&a.LastSeen,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	return a, err
}

func (db *PgChatRepository) CreateAccount(params CreateAccountParams) (Account, error) {
	row := db.conn.QueryRow(
		"INSERT INTO accounts (username, email, password_hash, avatar, bio, interests, location, created_at, updated_at) "+
			"VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $8) RETURNING "+accountColumns,
		params.Username,
		params.EmailAddress,
		params.PasswordHash,
		params.Avatar,
		params.Bio,
		params.Interests,
		params.Location,
		time.Now().UTC(),
	)

	return scanAccount(row)
}

func (db *PgChatRepository) GetAccountById(id int) (Account, error) {
	row := db.conn.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1 LIMIT 1",
		id,
	)

	return scanAccount(row)
}

func (db *PgChatRepository) GetAccountByUsername(username string) (Account, error) {
	row := db.conn.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE username = $1 LIMIT 1",
		username,
	)

	return scanAccount(row)
}

func (db *PgChatRepository) UpdateProfile(params UpdateProfileParams) (Account, error) {
	row := db.conn.QueryRow(
		"UPDATE accounts SET bio = $2, interests = $3, location = $4, updated_at = $5 "+
			"WHERE id = $1 RETURNING "+accountColumns,
		params.AccountId,
		params.Bio,
		params.Interests,
		params.Location,
		time.Now().UTC(),
	)

	return scanAccount(row)
}

func (db *PgChatRepository) IncrementProfileViews(id int) error {
	_, err := db.conn.Exec(
		"UPDATE accounts SET profile_views = profile_views + 1 WHERE id = $1",
		id,
	)

	return err
}

func (db *PgChatRepository) ListAccounts() ([]Account, error) {
	rows, err := db.conn.Query("SELECT " + accountColumns + " FROM accounts ORDER BY username")
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
