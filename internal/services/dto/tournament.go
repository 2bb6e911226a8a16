package dto

type CreateTournamentRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Password      string `json:"password" validate:"required,min=3"`
	AdminPassword string `json:"adminPassword" validate:"required,min=3"`
	Code          string `json:"code" validate:"required,min=3,max=16"`
	// ScoringType defaults to "stableford" when omitted.
	ScoringType     string `json:"scoringType" validate:"omitempty,oneof=stableford stroke_play match_play"`
	NumberOfDays    int    `json:"numberOfDays" validate:"omitempty,min=1,max=14"`
	BlurTop5        bool   `json:"blurTop5"`
	HandicapEnabled *bool  `json:"handicapEnabled"`
}

type JoinTournamentRequest struct {
	Code        string `json:"code" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"display_name" validate:"omitempty,max=50"`
	Handicap    int    `json:"handicap" validate:"omitempty,min=0,max=54"`
}

type UpdateBlurRequest struct {
	TournamentID string `json:"tournamentId" validate:"required"`
	BlurTop5     bool   `json:"blurTop5"`
}

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}
