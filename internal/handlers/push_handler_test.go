package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway_backend/internal/services"
	"fairway_backend/internal/services/dto"
	"fairway_backend/internal/validator"
	"fairway_backend/pkg/apperrors"
)

type stubPushService struct {
	publicKey    string
	publicKeyErr error
	subscribed   []*dto.PushSubscribeRequest
	sendResp     *dto.PushSendResponse
}

func (s *stubPushService) Subscribe(req *dto.PushSubscribeRequest) error {
	s.subscribed = append(s.subscribed, req)
	return nil
}

func (s *stubPushService) Unsubscribe(endpoint string) error { return nil }

func (s *stubPushService) PublicKey() (string, error) {
	return s.publicKey, s.publicKeyErr
}

func (s *stubPushService) Send(ctx context.Context, req *dto.PushSendRequest) (*dto.PushSendResponse, error) {
	return s.sendResp, nil
}

func newPushRouter(svc services.PushService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	base := NewBaseHandler(validator.New())
	h := NewPushHandler(base, svc)

	// Test auth stub: trusts the X-User-ID header.
	authMW := func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}

	api := engine.Group("/api/v1")
	h.RegisterRoutes(api, authMW)
	return engine
}

func TestVAPIDKey_Configured(t *testing.T) {
	router := newPushRouter(&stubPushService{publicKey: "test-public-key"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/push/vapid-key", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-public-key")
}

func TestVAPIDKey_UnconfiguredReturns500(t *testing.T) {
	router := newPushRouter(&stubPushService{
		publicKeyErr: apperrors.NewNotConfiguredError("push", "VAPID keys are not configured"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/push/vapid-key", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_CONFIGURED")
}

func TestSubscribe_RequiresAuth(t *testing.T) {
	router := newPushRouter(&stubPushService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/push/subscribe", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscribe_ValidBody(t *testing.T) {
	svc := &stubPushService{}
	router := newPushRouter(svc)

	body := `{
		"subscription": {
			"endpoint": "https://push.example.com/sub/abc",
			"keys": {"p256dh": "key-p256dh", "auth": "key-auth"}
		},
		"userId": "alice",
		"tournamentId": "t1"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/push/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "alice")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.subscribed, 1)
	assert.Equal(t, "https://push.example.com/sub/abc", svc.subscribed[0].Subscription.Endpoint)
}

func TestSubscribe_InvalidBodyRejected(t *testing.T) {
	svc := &stubPushService{}
	router := newPushRouter(svc)

	// Missing subscription keys.
	body := `{"subscription": {"endpoint": "not-a-url"}, "userId": "alice", "tournamentId": "t1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/push/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "alice")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.subscribed)
}

func TestSend_ReportsAttemptedCount(t *testing.T) {
	router := newPushRouter(&stubPushService{
		sendResp: &dto.PushSendResponse{Success: true, Sent: 4},
	})

	body := `{"tournamentId": "t1", "title": "Eagle!", "message": "carol scored an eagle"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/push/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "alice")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sent":4`)
}
