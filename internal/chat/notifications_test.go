package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatverse/chatverse/internal/database"
	"github.com/chatverse/chatverse/internal/testutil"
)

func TestNotificationList_DefaultLimit(t *testing.T) {
	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)

	expected := []database.Notification{{Id: 2, Content: "newest"}, {Id: 1, Content: "older"}}
	mockRepo.On("ListNotifications", 1, defaultNotificationLimit).Return(expected, nil).Once()

	n := NewNotificationLog(testutil.TestLogger(t), mockRepo)
	notifications, err := n.List(1, 0)
	assert.NoError(t, err)
	assert.Equal(t, expected, notifications)
}

func TestNotificationAppend(t *testing.T) {
	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("CreateNotification", 1, "friend_request", "bob sent you a friend request!").
		Return(database.Notification{Id: 5, AccountId: 1, Type: "friend_request"}, nil).Once()

	n := NewNotificationLog(testutil.TestLogger(t), mockRepo)
	notif, err := n.Append(1, "friend_request", "bob sent you a friend request!")
	assert.NoError(t, err)
	assert.Equal(t, 5, notif.Id)
}

func TestMarkAllRead(t *testing.T) {
	mockRepo := &database.MockChatRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("MarkNotificationsRead", 1).Return(nil).Once()

	n := NewNotificationLog(testutil.TestLogger(t), mockRepo)
	assert.NoError(t, n.MarkAllRead(1))
}
