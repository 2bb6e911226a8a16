package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fairway_backend/internal/models"
)

var (
	ErrRoundNotFound  = errors.New("round not found")
	ErrRoundCompleted = errors.New("round is completed and immutable")
)

type RoundRepository interface {
	Create(round *models.Round) error
	FindByID(id string) (*models.Round, error)
	FindPlayerRounds(tournamentID, playerID string) ([]models.Round, error)
	// UpsertHoleResult inserts or replaces the result for (round, hole).
	// It locks the round row and returns ErrRoundCompleted for a round
	// that was completed after the caller last read it.
	UpsertHoleResult(result *models.HoleResult) error
	FindHoleResults(roundID string) ([]models.HoleResult, error)
	MarkCompleted(id string) error
}

type roundRepository struct {
	db *gorm.DB
}

func NewRoundRepository(db *gorm.DB) RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) Create(round *models.Round) error {
	return r.db.Create(round).Error
}

func (r *roundRepository) FindByID(id string) (*models.Round, error) {
	var round models.Round
	err := r.db.Preload("HoleResults", func(db *gorm.DB) *gorm.DB {
		return db.Order("hole_number ASC")
	}).First(&round, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

func (r *roundRepository) FindPlayerRounds(tournamentID, playerID string) ([]models.Round, error) {
	var rounds []models.Round
	err := r.db.Preload("HoleResults").
		Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).
		Order("day ASC").
		Find(&rounds).Error
	return rounds, err
}

func (r *roundRepository) UpsertHoleResult(result *models.HoleResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var round models.Round
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "completed").
			First(&round, "id = ?", result.RoundID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}
			return err
		}
		if round.Completed {
			return ErrRoundCompleted
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "round_id"}, {Name: "hole_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"strokes", "updated_at"}),
		}).Create(result).Error
	})
}

func (r *roundRepository) FindHoleResults(roundID string) ([]models.HoleResult, error) {
	var results []models.HoleResult
	err := r.db.Where("round_id = ?", roundID).
		Order("hole_number ASC").
		Find(&results).Error
	return results, err
}

func (r *roundRepository) MarkCompleted(id string) error {
	result := r.db.Model(&models.Round{}).Where("id = ?", id).Update("completed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoundNotFound
	}
	return nil
}
