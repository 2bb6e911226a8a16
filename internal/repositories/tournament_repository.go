package repositories

import (
	"errors"

	"gorm.io/gorm"

	"fairway_backend/internal/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCodeTaken          = errors.New("tournament code already in use")
	ErrAlreadyJoined      = errors.New("player already joined this tournament")
	ErrPlayerNotFound     = errors.New("player not registered in tournament")
)

type TournamentRepository interface {
	Create(tournament *models.Tournament) error
	FindByID(id string) (*models.Tournament, error)
	FindByCode(code string) (*models.Tournament, error)
	UpdateBlurTop5(id string, blur bool) error

	AddPlayer(player *models.TournamentPlayer) error
	FindPlayers(tournamentID string) ([]models.TournamentPlayer, error)
	FindPlayer(tournamentID, userID string) (*models.TournamentPlayer, error)
}

type tournamentRepository struct {
	db *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) Create(tournament *models.Tournament) error {
	var count int64
	if err := r.db.Model(&models.Tournament{}).Where("code = ?", tournament.Code).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCodeTaken
	}

	return r.db.Create(tournament).Error
}

func (r *tournamentRepository) FindByID(id string) (*models.Tournament, error) {
	var tournament models.Tournament
	err := r.db.First(&tournament, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

func (r *tournamentRepository) FindByCode(code string) (*models.Tournament, error) {
	var tournament models.Tournament
	err := r.db.First(&tournament, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

func (r *tournamentRepository) UpdateBlurTop5(id string, blur bool) error {
	result := r.db.Model(&models.Tournament{}).Where("id = ?", id).Update("blur_top5", blur)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

func (r *tournamentRepository) AddPlayer(player *models.TournamentPlayer) error {
	var count int64
	err := r.db.Model(&models.TournamentPlayer{}).
		Where("tournament_id = ? AND user_id = ?", player.TournamentID, player.UserID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyJoined
	}

	return r.db.Create(player).Error
}

func (r *tournamentRepository) FindPlayers(tournamentID string) ([]models.TournamentPlayer, error) {
	var players []models.TournamentPlayer
	err := r.db.Where("tournament_id = ?", tournamentID).
		Order("created_at ASC").
		Find(&players).Error
	return players, err
}

func (r *tournamentRepository) FindPlayer(tournamentID, userID string) (*models.TournamentPlayer, error) {
	var player models.TournamentPlayer
	err := r.db.First(&player, "tournament_id = ? AND user_id = ?", tournamentID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}
