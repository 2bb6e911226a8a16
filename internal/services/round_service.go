package services

import (
	"context"

	"fairway_backend/internal/models"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/scoring"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

type RoundService interface {
	CreateRound(ctx context.Context, playerID string, req *dto.CreateRoundRequest) (*models.Round, error)
	// SubmitScore upserts the hole result and runs achievement detection
	// over the round so far. Resubmitting a hole replaces its strokes.
	SubmitScore(ctx context.Context, playerID, roundID string, req *dto.SubmitScoreRequest) (*dto.SubmitScoreResponse, error)
	CompleteRound(ctx context.Context, playerID, roundID string) error
	GetScorecard(roundID string) (*dto.ScorecardResponse, error)
	GetPlayerRounds(tournamentID, playerID string) ([]models.Round, error)
	ListCourses() ([]models.Course, error)
	GetCourse(courseID string) (*models.Course, error)
}

type roundService struct {
	roundRepo          repositories.RoundRepository
	courseRepo         repositories.CourseRepository
	tournamentRepo     repositories.TournamentRepository
	userRepo           repositories.UserRepository
	achievementService AchievementService
	hub                *realtime.Hub
}

func NewRoundService(
	roundRepo repositories.RoundRepository,
	courseRepo repositories.CourseRepository,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	achievementService AchievementService,
	hub *realtime.Hub,
) RoundService {
	return &roundService{
		roundRepo:          roundRepo,
		courseRepo:         courseRepo,
		tournamentRepo:     tournamentRepo,
		userRepo:           userRepo,
		achievementService: achievementService,
		hub:                hub,
	}
}

func (s *roundService) CreateRound(ctx context.Context, playerID string, req *dto.CreateRoundRequest) (*models.Round, error) {
	if _, err := s.tournamentRepo.FindPlayer(req.TournamentID, playerID); err != nil {
		if apperrors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, apperrors.NewForbiddenError("join the tournament before starting a round")
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		if apperrors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFoundError("course", "course not found")
		}
		return nil, apperrors.InternalError(err)
	}

	day := req.Day
	if day <= 0 {
		day = 1
	}

	round := &models.Round{
		TournamentID: req.TournamentID,
		PlayerID:     playerID,
		CourseID:     req.CourseID,
		Day:          day,
	}
	if err := s.roundRepo.Create(round); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.hub.Publish("rounds", "tournament_id="+req.TournamentID, "insert")
	return round, nil
}

func (s *roundService) SubmitScore(ctx context.Context, playerID, roundID string, req *dto.SubmitScoreRequest) (*dto.SubmitScoreResponse, error) {
	round, err := s.roundRepo.FindByID(roundID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoundNotFound) {
			return nil, apperrors.NewNotFoundError("round", "round not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if round.PlayerID != playerID {
		return nil, apperrors.NewForbiddenError("cannot score another player's round")
	}
	if round.Completed {
		return nil, apperrors.NewConflictError("round", "round is completed; scores are locked")
	}

	pars, err := s.courseRepo.FindHolePars(round.CourseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Round state before this submission, used as detection context.
	previousResults, err := s.roundRepo.FindHoleResults(roundID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.roundRepo.UpsertHoleResult(&models.HoleResult{
		RoundID:    roundID,
		HoleNumber: req.HoleNumber,
		Strokes:    req.Strokes,
	}); err != nil {
		if apperrors.Is(err, repositories.ErrRoundCompleted) {
			return nil, apperrors.NewConflictError("round", "round is completed; scores are locked")
		}
		return nil, apperrors.InternalError(err)
	}

	var previous []scoring.HoleScore
	for _, r := range previousResults {
		if r.HoleNumber == req.HoleNumber {
			continue
		}
		previous = append(previous, scoring.HoleScore{
			HoleNumber: r.HoleNumber,
			Strokes:    r.Strokes,
			Par:        pars[r.HoleNumber],
		})
	}

	playerName := playerID
	if user, err := s.userRepo.FindByID(playerID); err == nil {
		playerName = user.DisplayName
	}

	achievements := s.achievementService.OnScoreSubmitted(ctx, ScoreEvent{
		UserID:       playerID,
		PlayerName:   playerName,
		TournamentID: round.TournamentID,
		RoundID:      roundID,
		Newest: scoring.HoleScore{
			HoleNumber: req.HoleNumber,
			Strokes:    req.Strokes,
			Par:        pars[req.HoleNumber],
		},
		Previous: previous,
	})

	s.hub.Publish("rounds", "tournament_id="+round.TournamentID, "update")

	resp := &dto.SubmitScoreResponse{
		RoundID:    roundID,
		HoleNumber: req.HoleNumber,
		Strokes:    req.Strokes,
	}
	for _, a := range achievements {
		resp.Achievements = append(resp.Achievements, a.Type)
	}
	return resp, nil
}

func (s *roundService) CompleteRound(ctx context.Context, playerID, roundID string) error {
	round, err := s.roundRepo.FindByID(roundID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoundNotFound) {
			return apperrors.NewNotFoundError("round", "round not found")
		}
		return apperrors.InternalError(err)
	}
	if round.PlayerID != playerID {
		return apperrors.NewForbiddenError("cannot complete another player's round")
	}
	if round.Completed {
		return nil
	}

	if err := s.roundRepo.MarkCompleted(roundID); err != nil {
		return apperrors.InternalError(err)
	}
	s.hub.Publish("rounds", "tournament_id="+round.TournamentID, "update")
	return nil
}

func (s *roundService) GetScorecard(roundID string) (*dto.ScorecardResponse, error) {
	round, err := s.roundRepo.FindByID(roundID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoundNotFound) {
			return nil, apperrors.NewNotFoundError("round", "round not found")
		}
		return nil, apperrors.InternalError(err)
	}

	pars, err := s.courseRepo.FindHolePars(round.CourseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var holes []scoring.HoleScore
	for _, r := range round.HoleResults {
		holes = append(holes, scoring.HoleScore{
			HoleNumber: r.HoleNumber,
			Strokes:    r.Strokes,
			Par:        pars[r.HoleNumber],
		})
	}

	return &dto.ScorecardResponse{
		Round: round,
		ToPar: scoring.ToPar(holes),
		Holes: len(holes),
	}, nil
}

func (s *roundService) GetPlayerRounds(tournamentID, playerID string) ([]models.Round, error) {
	rounds, err := s.roundRepo.FindPlayerRounds(tournamentID, playerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rounds, nil
}

func (s *roundService) ListCourses() ([]models.Course, error) {
	courses, err := s.courseRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return courses, nil
}

func (s *roundService) GetCourse(courseID string) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFoundError("course", "course not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return course, nil
}
