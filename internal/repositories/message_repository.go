package repositories

import (
	"gorm.io/gorm"

	"fairway_backend/internal/models"
)

type MessageRepository interface {
	Create(message *models.Message) error
	// FindTournamentMessages returns the newest messages first.
	FindTournamentMessages(tournamentID string, limit int) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindTournamentMessages(tournamentID string, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var messages []models.Message
	err := r.db.Where("tournament_id = ?", tournamentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
