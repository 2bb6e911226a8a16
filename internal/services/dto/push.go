package dto

// WebPushSubscription mirrors the browser PushSubscription JSON shape.
type WebPushSubscription struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

type PushSubscribeRequest struct {
	Subscription WebPushSubscription `json:"subscription" validate:"required"`
	UserID       string              `json:"userId" validate:"required"`
	TournamentID string              `json:"tournamentId" validate:"required"`
}

type PushUnsubscribeRequest struct {
	Subscription WebPushSubscription `json:"subscription" validate:"required"`
}

// PushSendRequest addresses a tournament; userId targets one recipient,
// excludeUserId targets everyone else. userId wins when both are set.
type PushSendRequest struct {
	TournamentID  string `json:"tournamentId" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Message       string `json:"message" validate:"required"`
	UserID        string `json:"userId"`
	ExcludeUserID string `json:"excludeUserId"`
}

// PushSendResponse reports the attempted candidate count as Sent;
// confirmed deliveries are tracked in metrics, not here.
type PushSendResponse struct {
	Success bool   `json:"success"`
	Sent    int    `json:"sent"`
	Message string `json:"message,omitempty"`
}

type VAPIDKeyResponse struct {
	PublicKey string `json:"publicKey"`
}
