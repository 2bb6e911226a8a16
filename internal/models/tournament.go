package models

// Scoring formats supported per tournament day.
const (
	ScoringTypeStableford  = "stableford"
	ScoringTypeStrokePlay  = "stroke_play"
	ScoringTypeMatchPlay   = "match_play"
	DefaultScoringType     = ScoringTypeStableford
	DefaultNumberOfDays    = 1
)

type Tournament struct {
	BaseModel
	Name              string `gorm:"not null" json:"name"`
	Code              string `gorm:"uniqueIndex;not null" json:"code"`
	PasswordHash      string `gorm:"not null" json:"-"`
	AdminPasswordHash string `gorm:"not null" json:"-"`
	ScoringType       string `gorm:"not null;default:'stableford'" json:"scoring_type"`
	NumberOfDays      int    `gorm:"not null;default:1" json:"number_of_days"`
	BlurTop5          bool   `gorm:"default:false" json:"blur_top5"`
	HandicapEnabled   bool   `gorm:"default:true" json:"handicap_enabled"`

	// Relations
	Players  []TournamentPlayer `gorm:"foreignKey:TournamentID" json:"players,omitempty"`
	Messages []Message          `gorm:"foreignKey:TournamentID" json:"-"`
}

// TournamentPlayer links a user to a tournament roster.
type TournamentPlayer struct {
	BaseModel
	TournamentID string `gorm:"not null;index;uniqueIndex:idx_tournament_user" json:"tournament_id"`
	UserID       string `gorm:"not null;index;uniqueIndex:idx_tournament_user" json:"user_id"`
	DisplayName  string `gorm:"not null" json:"display_name"`
	Handicap     int    `gorm:"default:0" json:"handicap"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
}
