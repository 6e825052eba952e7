package chat

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chatverse/chatverse/internal/database"
	"github.com/teris-io/shortid"
)

// presenceWindow is how long after a heartbeat a user counts as online.
const presenceWindow = 2 * time.Minute

// PresenceTracker infers online status from heartbeats. Every
// authenticated write records one; there is no explicit logout, users
// simply age out of the window at read time.
type PresenceTracker struct {
	log           *log.Logger
	db            database.ChatRepository
	now           func() time.Time
	generateToken func() (string, error)
}

func NewPresenceTracker(logger *log.Logger, db database.ChatRepository) *PresenceTracker {
	return &PresenceTracker{
		log:           logger,
		db:            db,
		now:           time.Now,
		generateToken: shortid.Generate,
	}
}

// Touch records a heartbeat for the account, optionally moving it to a
// room. The session row is upserted, never appended, so heartbeats do
// not accumulate.
func (p *PresenceTracker) Touch(accountId int, room string) error {
	var roomId int
	if room != "" {
		r, err := p.db.GetRoomByName(room)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: room %q", ErrNotFound, room)
			}
			return fmt.Errorf("get room: %w", err)
		}
		roomId = r.Id
	}

	token, err := p.generateToken()
	if err != nil {
		return fmt.Errorf("generate session token: %w", err)
	}

	if err := p.db.UpsertSession(database.SessionParams{
		AccountId: accountId,
		Token:     token,
		RoomId:    roomId,
	}); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// ListOnline returns the users whose most recent heartbeat falls within
// the presence window. A non-empty room restricts the snapshot to users
// currently in that room.
func (p *PresenceTracker) ListOnline(room string) ([]database.Account, error) {
	var roomId int
	if room != "" {
		r, err := p.db.GetRoomByName(room)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: room %q", ErrNotFound, room)
			}
			return nil, fmt.Errorf("get room: %w", err)
		}
		roomId = r.Id
	}

	cutoff := p.now().Add(-presenceWindow)
	accounts, err := p.db.ListActiveSessions(cutoff, roomId)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}

	return accounts, nil
}
