package chat

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/chatverse/chatverse/internal/database"
	"golang.org/x/crypto/bcrypt"
)

const defaultBio = "Hey there! I am using ChatVerse!"

var defaultAvatars = []string{
	"👤", "👨", "👩", "🧑", "👨‍💼", "👩‍💼", "👨‍🎓", "👩‍🎓",
	"🦸", "🦸‍♀️", "🧙", "🧙‍♀️", "👨‍🚀", "👩‍🚀",
}

type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	Bio       string
	Interests string
	Location  string
}

// Accounts is the identity and credential store.
type Accounts struct {
	log      *log.Logger
	db       database.ChatRepository
	presence *PresenceTracker
}

func NewAccounts(logger *log.Logger, db database.ChatRepository, presence *PresenceTracker) *Accounts {
	return &Accounts{log: logger, db: db, presence: presence}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (a *Accounts) Register(params RegisterParams) (database.Account, error) {
	if params.Username == "" || params.Password == "" {
		return database.Account{}, fmt.Errorf("%w: username and password are required", ErrInvalidState)
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return database.Account{}, fmt.Errorf("hash password: %w", err)
	}

	bio := params.Bio
	if bio == "" {
		bio = defaultBio
	}

	acct, err := a.db.CreateAccount(database.CreateAccountParams{
		Username:     params.Username,
		EmailAddress: params.Email,
		PasswordHash: hash,
		Avatar:       defaultAvatars[rand.Intn(len(defaultAvatars))],
		Bio:          bio,
		Interests:    params.Interests,
		Location:     params.Location,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return database.Account{}, fmt.Errorf("%w: username or email already exists", ErrConflict)
		}
		return database.Account{}, fmt.Errorf("create account: %w", err)
	}

	return acct, nil
}

// Authenticate verifies credentials and records a login heartbeat, since
// a login is an authenticated write and presence is inferred from those.
func (a *Accounts) Authenticate(username, password string) (database.Account, error) {
	acct, err := a.db.GetAccountByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.Account{}, ErrUnauthorized
		}
		return database.Account{}, fmt.Errorf("get account: %w", err)
	}

	if !verifyPassword(acct.PasswordHash, password) {
		return database.Account{}, ErrUnauthorized
	}

	if err := a.presence.Touch(acct.Id, ""); err != nil {
		return database.Account{}, fmt.Errorf("login heartbeat: %w", err)
	}

	return acct, nil
}

func (a *Accounts) Get(id int) (database.Account, error) {
	acct, err := a.db.GetAccountById(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.Account{}, ErrNotFound
		}
		return database.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acct, nil
}

// Profile returns a user's profile, counting a view when someone other
// than the profile's owner looks at it.
func (a *Accounts) Profile(viewerId int, username string) (database.Account, error) {
	acct, err := a.db.GetAccountByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.Account{}, ErrNotFound
		}
		return database.Account{}, fmt.Errorf("get account: %w", err)
	}

	if acct.Id != viewerId {
		if err := a.db.IncrementProfileViews(acct.Id); err != nil {
			return database.Account{}, fmt.Errorf("increment profile views: %w", err)
		}
		acct.ProfileViews++
	}

	return acct, nil
}

func (a *Accounts) UpdateProfile(params database.UpdateProfileParams) (database.Account, error) {
	acct, err := a.db.UpdateProfile(params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.Account{}, ErrNotFound
		}
		return database.Account{}, fmt.Errorf("update profile: %w", err)
	}

	return acct, nil
}
