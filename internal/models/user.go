package models

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	DisplayName  string `gorm:"not null" json:"display_name"`
	AvatarURL    string `json:"avatar_url"`

	// Relations
	Rounds        []Round            `gorm:"foreignKey:PlayerID" json:"-"`
	Subscriptions []PushSubscription `gorm:"foreignKey:UserID" json:"-"`
}
