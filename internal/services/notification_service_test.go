package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway_backend/internal/models"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
)

type fakeNotificationRepo struct {
	mu            sync.Mutex
	created       []models.Notification
	failForUsers  map[string]error
	read          map[string]bool
	deletedUserID string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		failForUsers: map[string]error{},
		read:         map[string]bool{},
	}
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failForUsers[n.UserID]; ok {
		return err
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	return nil, repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkAsRead(userID, notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.read[notificationID] = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(userID string) error { return nil }

func (f *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.created {
		if c.UserID == userID && !c.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) DeleteUserNotifications(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedUserID = userID
	return nil
}

func (f *fakeNotificationRepo) DeleteReadOlderThan(cutoff time.Time) (int64, error) { return 0, nil }

func (f *fakeNotificationRepo) createdFor(userID string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeTournamentRepo struct {
	players    map[string][]models.TournamentPlayer
	playersErr error
}

func (f *fakeTournamentRepo) Create(t *models.Tournament) error { return nil }

func (f *fakeTournamentRepo) FindByID(id string) (*models.Tournament, error) {
	return nil, repositories.ErrTournamentNotFound
}

func (f *fakeTournamentRepo) FindByCode(code string) (*models.Tournament, error) {
	return nil, repositories.ErrTournamentNotFound
}

func (f *fakeTournamentRepo) UpdateBlurTop5(id string, blur bool) error { return nil }

func (f *fakeTournamentRepo) AddPlayer(p *models.TournamentPlayer) error { return nil }

func (f *fakeTournamentRepo) FindPlayers(tournamentID string) ([]models.TournamentPlayer, error) {
	if f.playersErr != nil {
		return nil, f.playersErr
	}
	return f.players[tournamentID], nil
}

func (f *fakeTournamentRepo) FindPlayer(tournamentID, userID string) (*models.TournamentPlayer, error) {
	for _, p := range f.players[tournamentID] {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

type fakePushService struct {
	mu       sync.Mutex
	requests []*dto.PushSendRequest
	sent     int
	err      error
}

func (f *fakePushService) Subscribe(req *dto.PushSubscribeRequest) error { return nil }
func (f *fakePushService) Unsubscribe(endpoint string) error             { return nil }
func (f *fakePushService) PublicKey() (string, error)                    { return "", nil }

func (f *fakePushService) Send(ctx context.Context, req *dto.PushSendRequest) (*dto.PushSendResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PushSendResponse{Success: true, Sent: f.sent}, nil
}

func playersFor(tournamentID string, userIDs ...string) map[string][]models.TournamentPlayer {
	var players []models.TournamentPlayer
	for _, id := range userIDs {
		players = append(players, models.TournamentPlayer{TournamentID: tournamentID, UserID: id})
	}
	return map[string][]models.TournamentPlayer{tournamentID: players}
}

func TestBroadcast_CreatesOnePerPlayerExceptSender(t *testing.T) {
	notifRepo := newFakeNotificationRepo()
	tourRepo := &fakeTournamentRepo{players: playersFor("t1", "alice", "bob", "carol", "dave")}
	push := &fakePushService{sent: 3}
	svc := NewNotificationService(notifRepo, tourRepo, push, realtime.NewHub())

	result := svc.Broadcast(context.Background(), BroadcastEvent{
		SenderID:     "alice",
		TournamentID: "t1",
		Type:         repositories.NotificationTypeChat,
		Title:        "New message",
		Message:      "alice: on the tee",
	})

	assert.Equal(t, 3, result.Created())
	assert.Equal(t, 0, result.Failed())
	assert.Empty(t, notifRepo.createdFor("alice"))
	for _, id := range []string{"bob", "carol", "dave"} {
		assert.Len(t, notifRepo.createdFor(id), 1, "recipient %s", id)
	}
}

func TestBroadcast_PushExcludesSender(t *testing.T) {
	notifRepo := newFakeNotificationRepo()
	tourRepo := &fakeTournamentRepo{players: playersFor("t1", "alice", "bob")}
	push := &fakePushService{sent: 1}
	svc := NewNotificationService(notifRepo, tourRepo, push, realtime.NewHub())

	result := svc.Broadcast(context.Background(), BroadcastEvent{
		SenderID:     "alice",
		TournamentID: "t1",
		Type:         repositories.NotificationTypeChat,
		Title:        "New message",
		Message:      "hi",
	})

	require.Len(t, push.requests, 1)
	assert.Equal(t, "alice", push.requests[0].ExcludeUserID)
	assert.Equal(t, "t1", push.requests[0].TournamentID)
	assert.Equal(t, 1, result.PushAttempted)
}

func TestBroadcast_PartialFailureDoesNotBlockOthers(t *testing.T) {
	notifRepo := newFakeNotificationRepo()
	notifRepo.failForUsers["bob"] = errors.New("insert failed")
	tourRepo := &fakeTournamentRepo{players: playersFor("t1", "alice", "bob", "carol")}
	push := &fakePushService{}
	svc := NewNotificationService(notifRepo, tourRepo, push, realtime.NewHub())

	result := svc.Broadcast(context.Background(), BroadcastEvent{
		SenderID:     "alice",
		TournamentID: "t1",
		Type:         repositories.NotificationTypeAchievement,
		Title:        "Eagle!",
		Message:      "carol scored an eagle on hole 7",
	})

	assert.Equal(t, 1, result.Created())
	assert.Equal(t, 1, result.Failed())
	assert.Len(t, notifRepo.createdFor("carol"), 1)
	assert.Empty(t, notifRepo.createdFor("bob"))

	var failed *RecipientOutcome
	for i := range result.Outcomes {
		if result.Outcomes[i].UserID == "bob" {
			failed = &result.Outcomes[i]
		}
	}
	require.NotNil(t, failed)
	assert.Error(t, failed.Err)
}

func TestBroadcast_PushFailureRecordedNotPropagated(t *testing.T) {
	notifRepo := newFakeNotificationRepo()
	tourRepo := &fakeTournamentRepo{players: playersFor("t1", "alice", "bob")}
	push := &fakePushService{err: errors.New("gateway down")}
	svc := NewNotificationService(notifRepo, tourRepo, push, realtime.NewHub())

	result := svc.Broadcast(context.Background(), BroadcastEvent{
		SenderID:     "alice",
		TournamentID: "t1",
		Type:         repositories.NotificationTypeChat,
		Title:        "New message",
		Message:      "hi",
	})

	assert.Equal(t, 1, result.Created())
	assert.Error(t, result.PushErr)
}

func TestBroadcast_PlayerListFailureYieldsEmptyResult(t *testing.T) {
	notifRepo := newFakeNotificationRepo()
	tourRepo := &fakeTournamentRepo{playersErr: errors.New("db down")}
	push := &fakePushService{}
	svc := NewNotificationService(notifRepo, tourRepo, push, realtime.NewHub())

	result := svc.Broadcast(context.Background(), BroadcastEvent{
		SenderID:     "alice",
		TournamentID: "t1",
		Type:         repositories.NotificationTypeChat,
		Title:        "New message",
		Message:      "hi",
	})

	assert.Empty(t, result.Outcomes)
	assert.Empty(t, push.requests)
}

func TestGetUserNotifications_AttachesPresentation(t *testing.T) {
	notifRepo := newFakeNotificationRepo()
	require.NoError(t, notifRepo.Create(&models.Notification{
		UserID: "bob", TournamentID: "t1",
		Type: repositories.NotificationTypeAchievement, Title: "Birdie!",
	}))
	svc := NewNotificationService(notifRepo, &fakeTournamentRepo{}, &fakePushService{}, realtime.NewHub())

	resp, err := svc.GetUserNotifications("bob", repositories.NotificationCriteria{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, repositories.PresentationFor(repositories.NotificationTypeAchievement),
		resp.Notifications[0].Presentation)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
}
