package dto

import "fairway_backend/internal/models"

type CreateRoundRequest struct {
	TournamentID string `json:"tournament_id" validate:"required"`
	CourseID     string `json:"course_id" validate:"required"`
	Day          int    `json:"day" validate:"omitempty,min=1,max=14"`
}

type SubmitScoreRequest struct {
	HoleNumber int `json:"hole_number" validate:"required,min=1,max=18"`
	Strokes    int `json:"strokes" validate:"required,min=1,max=20"`
}

// SubmitScoreResponse reports the achievements detected on the submitted
// hole so the client can celebrate immediately.
type SubmitScoreResponse struct {
	RoundID      string   `json:"round_id"`
	HoleNumber   int      `json:"hole_number"`
	Strokes      int      `json:"strokes"`
	Achievements []string `json:"achievements"`
}

type ScorecardResponse struct {
	Round *models.Round `json:"round"`
	ToPar int           `json:"to_par"`
	Holes int           `json:"holes_played"`
}
