package chat

import (
	"log"

	"github.com/chatverse/chatverse/internal/database"
)

// Service bundles the core components over one shared repository.
type Service struct {
	Accounts      *Accounts
	Presence      *PresenceTracker
	Messages      *MessageStore
	Friends       *FriendGraph
	Recommender   *Recommender
	Rooms         *RoomRegistry
	Notifications *NotificationLog
}

func NewService(logger *log.Logger, db database.ChatRepository) *Service {
	presence := NewPresenceTracker(logger, db)
	recommender := NewRecommender(logger, db)

	return &Service{
		Accounts:      NewAccounts(logger, db, presence),
		Presence:      presence,
		Messages:      NewMessageStore(logger, db, presence, recommender),
		Friends:       NewFriendGraph(logger, db),
		Recommender:   recommender,
		Rooms:         NewRoomRegistry(logger, db),
		Notifications: NewNotificationLog(logger, db),
	}
}

// canonicalPair orders two accounts lexicographically by username so
// symmetric relations (friendships, interaction scores) never fork into
// two rows for the same pair.
func canonicalPair(a, b database.Account) (database.Account, database.Account) {
	if a.Username > b.Username {
		return b, a
	}
	return a, b
}
