package chat

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/chatverse/chatverse/internal/database"
)

// FriendGraph owns the request lifecycle and accepted-edge storage.
// Requests move pending -> accepted|declined and never reopen; a
// declined pair may be requested again later.
type FriendGraph struct {
	log *log.Logger
	db  database.ChatRepository
}

func NewFriendGraph(logger *log.Logger, db database.ChatRepository) *FriendGraph {
	return &FriendGraph{log: logger, db: db}
}

// SendRequest creates a pending request between the two users and
// notifies the recipient. The pair is canonicalized before storage, so
// counter-requests from the other direction collide with the existing
// pending row instead of forking.
func (g *FriendGraph) SendRequest(fromId int, toUsername, note string) (database.FriendRequest, error) {
	from, err := g.db.GetAccountById(fromId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.FriendRequest{}, ErrNotFound
		}
		return database.FriendRequest{}, fmt.Errorf("get sender: %w", err)
	}

	to, err := g.db.GetAccountByUsername(toUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.FriendRequest{}, fmt.Errorf("%w: user %q", ErrNotFound, toUsername)
		}
		return database.FriendRequest{}, fmt.Errorf("get recipient: %w", err)
	}

	if from.Id == to.Id {
		return database.FriendRequest{}, fmt.Errorf("%w: cannot befriend yourself", ErrInvalidState)
	}

	first, second := canonicalPair(from, to)

	friends, err := g.db.FriendshipExists(first.Id, second.Id)
	if err != nil {
		return database.FriendRequest{}, fmt.Errorf("check friendship: %w", err)
	}
	if friends {
		return database.FriendRequest{}, fmt.Errorf("%w: already friends with %s", ErrConflict, to.Username)
	}

	req, err := g.db.CreateFriendRequest(database.CreateFriendRequestParams{
		UserA:        first.Id,
		UserB:        second.Id,
		RequesterId:  from.Id,
		RecipientId:  to.Id,
		Message:      note,
		Notification: fmt.Sprintf("%s sent you a friend request!", from.Username),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return database.FriendRequest{}, fmt.Errorf("%w: request already pending for %s", ErrConflict, to.Username)
		}
		return database.FriendRequest{}, fmt.Errorf("create friend request: %w", err)
	}

	return req, nil
}

// Respond resolves a pending request. Only the recipient may respond.
// Accepting creates the edge, notifies the requester, and records a
// friend interaction in one transaction; declining creates nothing.
// A terminal request cannot be responded to again.
func (g *FriendGraph) Respond(responderId, requestId int, accept bool) error {
	req, err := g.db.GetFriendRequestById(requestId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: friend request %d", ErrNotFound, requestId)
		}
		return fmt.Errorf("get friend request: %w", err)
	}

	if responderId != req.UserA && responderId != req.UserB {
		return fmt.Errorf("%w: friend request %d", ErrNotFound, requestId)
	}
	if responderId == req.RequesterId {
		return fmt.Errorf("%w: requester cannot respond to own request", ErrUnauthorized)
	}

	if req.Status != "pending" {
		return fmt.Errorf("%w: friend request already %s", ErrInvalidState, req.Status)
	}

	if err := g.db.ResolveFriendRequest(requestId, accept); err != nil {
		// A concurrent respond can win between the read and the update.
		if errors.Is(err, database.ErrRequestResolved) {
			return fmt.Errorf("%w: friend request already resolved", ErrInvalidState)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: friend request %d", ErrNotFound, requestId)
		}
		return fmt.Errorf("resolve friend request: %w", err)
	}

	return nil
}

func (g *FriendGraph) Friends(accountId int) ([]database.Friend, error) {
	friends, err := g.db.ListFriends(accountId)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}

	return friends, nil
}

// PendingRequests returns the incoming pending requests for a user,
// newest first.
func (g *FriendGraph) PendingRequests(accountId int) ([]database.FriendRequest, error) {
	requests, err := g.db.ListPendingRequests(accountId)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}

	return requests, nil
}
