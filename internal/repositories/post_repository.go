package repositories

import (
	"gorm.io/gorm"

	"fairway_backend/internal/models"
)

type PostRepository interface {
	Create(post *models.Post) error
	// FindTournamentPosts returns the feed, newest first.
	FindTournamentPosts(tournamentID string, limit int) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) FindTournamentPosts(tournamentID string, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var posts []models.Post
	err := r.db.Where("tournament_id = ?", tournamentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
