package push

import (
	"context"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"fairway_backend/internal/models"
)

// VAPIDKeys is the signing key pair for web push. An empty pair means push
// is disabled; the gateway then reports success with zero sent.
type VAPIDKeys struct {
	PublicKey  string
	PrivateKey string
	Subscriber string // mailto: contact sent to the push service
}

func (k VAPIDKeys) Configured() bool {
	return k.PublicKey != "" && k.PrivateKey != ""
}

// GenerateVAPIDKeys creates a fresh key pair, for first-run setups that
// have none in the environment.
func GenerateVAPIDKeys() (privateKey, publicKey string, err error) {
	return webpush.GenerateVAPIDKeys()
}

// Transport delivers one encrypted payload to one subscription endpoint.
// It returns the push service's HTTP status; StatusGone means the endpoint
// is permanently dead and the subscription must be pruned.
type Transport interface {
	Send(ctx context.Context, sub *models.PushSubscription, payload []byte) (status int, err error)
}

// StatusGone is the status a push service returns for an endpoint that no
// longer exists.
const StatusGone = http.StatusGone

type webpushTransport struct {
	keys VAPIDKeys
	ttl  int
}

// NewWebPushTransport builds the production transport over webpush-go.
func NewWebPushTransport(keys VAPIDKeys) Transport {
	return &webpushTransport{keys: keys, ttl: 30}
}

func (t *webpushTransport) Send(ctx context.Context, sub *models.PushSubscription, payload []byte) (int, error) {
	s := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, s, &webpush.Options{
		Subscriber:      t.keys.Subscriber,
		VAPIDPublicKey:  t.keys.PublicKey,
		VAPIDPrivateKey: t.keys.PrivateKey,
		TTL:             t.ttl,
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
