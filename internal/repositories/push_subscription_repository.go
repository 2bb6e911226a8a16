package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fairway_backend/internal/models"
)

var ErrSubscriptionNotFound = errors.New("push subscription not found")

// SubscriptionFilter narrows the candidate set for a push batch. UserID
// takes precedence over ExcludeUserID when both are set.
type SubscriptionFilter struct {
	UserID        string
	ExcludeUserID string
}

type PushSubscriptionRepository interface {
	// Upsert registers a device, keyed by endpoint: re-registering an
	// existing endpoint updates its keys and owner instead of duplicating.
	Upsert(sub *models.PushSubscription) error
	DeleteByEndpoint(endpoint string) error
	FindByTournament(tournamentID string, filter SubscriptionFilter) ([]models.PushSubscription, error)
}

type pushSubscriptionRepository struct {
	db *gorm.DB
}

func NewPushSubscriptionRepository(db *gorm.DB) PushSubscriptionRepository {
	return &pushSubscriptionRepository{db: db}
}

func (r *pushSubscriptionRepository) Upsert(sub *models.PushSubscription) error {
	if sub.Endpoint == "" {
		return errors.New("endpoint is required")
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "tournament_id", "p256dh", "auth", "updated_at",
		}),
	}).Create(sub).Error
}

func (r *pushSubscriptionRepository) DeleteByEndpoint(endpoint string) error {
	result := r.db.Where("endpoint = ?", endpoint).Delete(&models.PushSubscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *pushSubscriptionRepository) FindByTournament(tournamentID string, filter SubscriptionFilter) ([]models.PushSubscription, error) {
	query := r.db.Where("tournament_id = ?", tournamentID)

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	} else if filter.ExcludeUserID != "" {
		query = query.Where("user_id <> ?", filter.ExcludeUserID)
	}

	var subs []models.PushSubscription
	err := query.Find(&subs).Error
	return subs, err
}
