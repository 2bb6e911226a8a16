package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway_backend/internal/models"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

type memMessageRepo struct {
	mu       sync.Mutex
	messages []models.Message
}

func (m *memMessageRepo) Create(message *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *message)
	return nil
}

func (m *memMessageRepo) FindTournamentMessages(tournamentID string, limit int) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Message
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if m.messages[i].TournamentID == tournamentID {
			out = append(out, m.messages[i])
		}
	}
	return out, nil
}

func newChatServiceForTest() (ChatService, *memMessageRepo, *recordingNotificationService) {
	messages := &memMessageRepo{}
	notifier := &recordingNotificationService{}
	players := playersFor("t1", "alice", "bob")
	players["t1"][0].DisplayName = "Alice"
	svc := NewChatService(messages, &fakeTournamentRepo{players: players}, notifier, realtime.NewHub())
	return svc, messages, notifier
}

func TestSendMessage_RequiresMembership(t *testing.T) {
	svc, _, _ := newChatServiceForTest()

	_, err := svc.SendMessage(context.Background(), "stranger", &dto.SendMessageRequest{
		TournamentID: "t1", Body: "hello",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestSendMessage_PersistsAndNotifies(t *testing.T) {
	svc, messages, notifier := newChatServiceForTest()

	msg, err := svc.SendMessage(context.Background(), "alice", &dto.SendMessageRequest{
		TournamentID: "t1", Body: "on the tee",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", msg.SenderName)
	require.Len(t, messages.messages, 1)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "alice", notifier.events[0].SenderID)
	assert.Equal(t, repositories.NotificationTypeChat, notifier.events[0].Type)
	assert.Contains(t, notifier.events[0].Message, "on the tee")
}

func TestSendMessage_LongBodyTruncatedInNotification(t *testing.T) {
	svc, _, notifier := newChatServiceForTest()

	long := make([]rune, 300)
	for i := range long {
		long[i] = 'x'
	}
	_, err := svc.SendMessage(context.Background(), "alice", &dto.SendMessageRequest{
		TournamentID: "t1", Body: string(long),
	})
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	assert.Less(t, len([]rune(notifier.events[0].Message)), 200)
}

func TestGetMessages_NewestFirst(t *testing.T) {
	svc, _, _ := newChatServiceForTest()

	for _, body := range []string{"first", "second", "third"} {
		_, err := svc.SendMessage(context.Background(), "alice", &dto.SendMessageRequest{
			TournamentID: "t1", Body: body,
		})
		require.NoError(t, err)
	}

	resp, err := svc.GetMessages("bob", "t1", 2)
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "third", resp.Messages[0].Body)
	assert.Equal(t, "second", resp.Messages[1].Body)
}

func TestGetMessages_RequiresMembership(t *testing.T) {
	svc, _, _ := newChatServiceForTest()

	_, err := svc.GetMessages("stranger", "t1", 10)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
