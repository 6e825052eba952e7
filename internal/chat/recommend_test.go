package chat

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatverse/chatverse/internal/database"
	"github.com/chatverse/chatverse/internal/testutil"
)

func TestRecord_Commutative(t *testing.T) {
	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)

	// same canonical pair regardless of argument order
	mockRepo.On("UpsertInteraction", alice.Id, bob.Id, "message").Return(nil).Twice()

	r := NewRecommender(testutil.TestLogger(t), mockRepo)
	assert.NoError(t, r.Record(alice, bob, "message"))
	assert.NoError(t, r.Record(bob, alice, "message"))
}

func TestRecommend(t *testing.T) {
	subject := database.Account{Id: 1, Username: "alice"}
	friend := database.Account{Id: 2, Username: "bob"}
	chatty := database.Account{Id: 3, Username: "carol", ProfileViews: 1}
	popular := database.Account{Id: 4, Username: "dave", ProfileViews: 10}
	quiet := database.Account{Id: 5, Username: "erin"}

	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetAccountById", subject.Id).Return(subject, nil).Once()
	mockRepo.On("ListAccounts").Return([]database.Account{subject, friend, chatty, popular, quiet}, nil).Once()
	mockRepo.On("ListFriends", subject.Id).Return([]database.Friend{{Account: friend}}, nil).Once()
	mockRepo.On("ListInteractions", subject.Id).Return([]database.InteractionScore{
		{UserA: subject.Id, UserB: chatty.Id, Kind: "message", Strength: 12},
		{UserA: subject.Id, UserB: chatty.Id, Kind: "friend", Strength: 1},
		{UserA: subject.Id, UserB: friend.Id, Kind: "message", Strength: 50},
	}, nil).Once()

	r := NewRecommender(testutil.TestLogger(t), mockRepo)
	recs, err := r.Recommend(subject.Id, 0)
	assert.NoError(t, err)

	// carol leads on shared kinds, dave beats erin on profile views,
	// bob is excluded as an existing friend
	assert.Len(t, recs, 3)
	assert.Equal(t, chatty.Username, recs[0].Account.Username)
	assert.Equal(t, 2, recs[0].SharedKinds)
	assert.Equal(t, popular.Username, recs[1].Account.Username)
	assert.Equal(t, quiet.Username, recs[2].Account.Username)
}

func TestRecommend_Limit(t *testing.T) {
	subject := database.Account{Id: 1, Username: "alice"}
	others := []database.Account{
		subject,
		{Id: 2, Username: "bob"},
		{Id: 3, Username: "carol"},
		{Id: 4, Username: "dave"},
	}

	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetAccountById", subject.Id).Return(subject, nil).Once()
	mockRepo.On("ListAccounts").Return(others, nil).Once()
	mockRepo.On("ListFriends", subject.Id).Return([]database.Friend{}, nil).Once()
	mockRepo.On("ListInteractions", subject.Id).Return([]database.InteractionScore{}, nil).Once()

	r := NewRecommender(testutil.TestLogger(t), mockRepo)
	recs, err := r.Recommend(subject.Id, 2)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestRecommend_UnknownAccount(t *testing.T) {
	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetAccountById", 404).Return(database.Account{}, sql.ErrNoRows).Once()

	r := NewRecommender(testutil.TestLogger(t), mockRepo)
	_, err := r.Recommend(404, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
