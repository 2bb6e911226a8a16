package models

type Round struct {
	BaseModel
	TournamentID string `gorm:"not null;index" json:"tournament_id"`
	PlayerID     string `gorm:"not null;index" json:"player_id"`
	CourseID     string `gorm:"not null" json:"course_id"`
	Day          int    `gorm:"not null;default:1" json:"day"`
	Completed    bool   `gorm:"default:false" json:"completed"`

	HoleResults []HoleResult `gorm:"foreignKey:RoundID" json:"hole_results,omitempty"`
}

// HoleResult is one scored hole within a round. A round carries at most one
// result per hole number; score submission upserts by (round_id, hole_number).
type HoleResult struct {
	BaseModel
	RoundID    string `gorm:"not null;index;uniqueIndex:idx_round_hole" json:"round_id"`
	HoleNumber int    `gorm:"not null;uniqueIndex:idx_round_hole" json:"hole_number"`
	Strokes    int    `gorm:"not null" json:"strokes"`
}
