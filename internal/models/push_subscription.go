package models

// PushSubscription is a device's registered web-push endpoint. The endpoint
// uniquely identifies the device across upserts; the row is deleted when the
// push service reports the endpoint gone (HTTP 410) or on explicit unsubscribe.
type PushSubscription struct {
	BaseModel
	UserID       string `gorm:"not null;index" json:"user_id"`
	TournamentID string `gorm:"not null;index" json:"tournament_id"`
	Endpoint     string `gorm:"uniqueIndex;not null" json:"endpoint"`
	P256dh       string `gorm:"not null" json:"p256dh"`
	Auth         string `gorm:"not null" json:"auth"`
}
