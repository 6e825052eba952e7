package chat

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/chatverse/chatverse/internal/database"
)

const defaultMaxUsers = 100

type CreateRoomParams struct {
	Name        string
	Description string
	Category    string
	Private     bool
	Password    string
	MaxUsers    int
}

// RoomRegistry manages named channels and their metadata. Max occupancy
// is declared but not enforced.
type RoomRegistry struct {
	log *log.Logger
	db  database.ChatRepository
}

func NewRoomRegistry(logger *log.Logger, db database.ChatRepository) *RoomRegistry {
	return &RoomRegistry{log: logger, db: db}
}

func (r *RoomRegistry) Create(creator string, params CreateRoomParams) (database.Room, error) {
	if params.Name == "" {
		return database.Room{}, fmt.Errorf("%w: room name is required", ErrInvalidState)
	}

	category := params.Category
	if category == "" {
		category = "general"
	}

	maxUsers := params.MaxUsers
	if maxUsers <= 0 {
		maxUsers = defaultMaxUsers
	}

	var passwordHash string
	if params.Private && params.Password != "" {
		var err error
		passwordHash, err = HashPassword(params.Password)
		if err != nil {
			return database.Room{}, fmt.Errorf("hash room password: %w", err)
		}
	}

	room, err := r.db.CreateRoom(database.CreateRoomParams{
		Name:         params.Name,
		Description:  params.Description,
		CreatedBy:    creator,
		Private:      params.Private,
		PasswordHash: passwordHash,
		Category:     category,
		MaxUsers:     maxUsers,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return database.Room{}, fmt.Errorf("%w: room %q already exists", ErrConflict, params.Name)
		}
		return database.Room{}, fmt.Errorf("create room: %w", err)
	}

	return room, nil
}

func (r *RoomRegistry) List(publicOnly bool) ([]database.Room, error) {
	rooms, err := r.db.ListRooms(publicOnly)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	return rooms, nil
}

func (r *RoomRegistry) Get(name string) (database.Room, error) {
	room, err := r.db.GetRoomByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.Room{}, fmt.Errorf("%w: room %q", ErrNotFound, name)
		}
		return database.Room{}, fmt.Errorf("get room: %w", err)
	}

	return room, nil
}

// CheckPassword gates entry to a private room: a single hash comparison.
// Public rooms and private rooms without a password always pass.
func (r *RoomRegistry) CheckPassword(name, password string) error {
	room, err := r.Get(name)
	if err != nil {
		return err
	}

	if !room.Private || room.PasswordHash == "" {
		return nil
	}

	if !verifyPassword(room.PasswordHash, password) {
		return fmt.Errorf("%w: wrong password for room %q", ErrUnauthorized, name)
	}

	return nil
}
