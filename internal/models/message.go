package models

// Message is a chat entry scoped to a tournament. Append-only.
type Message struct {
	BaseModel
	TournamentID string `gorm:"not null;index" json:"tournament_id"`
	SenderID     string `gorm:"not null;index" json:"sender_id"`
	SenderName   string `gorm:"not null" json:"sender_name"`
	Body         string `gorm:"not null" json:"body"`
}
