package services

import (
	"context"

	"fairway_backend/internal/auth"
	"fairway_backend/internal/email"
	"fairway_backend/internal/logger"
	"fairway_backend/internal/models"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

type TournamentService interface {
	// Create builds the tournament with defaults applied (stableford, one
	// day) and registers the creator as its first admin player.
	Create(ctx context.Context, creatorID string, req *dto.CreateTournamentRequest) (*models.Tournament, error)
	Join(ctx context.Context, userID string, req *dto.JoinTournamentRequest) (*models.Tournament, error)
	UpdateBlur(ctx context.Context, userID string, req *dto.UpdateBlurRequest) error
	Get(tournamentID string) (*models.Tournament, error)
	Players(tournamentID string) ([]models.TournamentPlayer, error)
	Invite(ctx context.Context, userID, tournamentID string, req *dto.InviteRequest) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	userRepo       repositories.UserRepository
	emailSender    email.Sender
	hub            *realtime.Hub
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	emailSender email.Sender,
	hub *realtime.Hub,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		emailSender:    emailSender,
		hub:            hub,
	}
}

func (s *tournamentService) Create(ctx context.Context, creatorID string, req *dto.CreateTournamentRequest) (*models.Tournament, error) {
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	adminHash, err := auth.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	scoringType := req.ScoringType
	if scoringType == "" {
		scoringType = models.DefaultScoringType
	}
	days := req.NumberOfDays
	if days <= 0 {
		days = models.DefaultNumberOfDays
	}
	handicapEnabled := true
	if req.HandicapEnabled != nil {
		handicapEnabled = *req.HandicapEnabled
	}

	tournament := &models.Tournament{
		Name:              req.Name,
		Code:              req.Code,
		PasswordHash:      passwordHash,
		AdminPasswordHash: adminHash,
		ScoringType:       scoringType,
		NumberOfDays:      days,
		BlurTop5:          req.BlurTop5,
		HandicapEnabled:   handicapEnabled,
	}
	if err := s.tournamentRepo.Create(tournament); err != nil {
		if apperrors.Is(err, repositories.ErrCodeTaken) {
			return nil, apperrors.NewConflictError("tournament", "tournament code already in use")
		}
		return nil, apperrors.InternalError(err)
	}

	displayName := creatorID
	if user, err := s.userRepo.FindByID(creatorID); err == nil {
		displayName = user.DisplayName
	}
	if err := s.tournamentRepo.AddPlayer(&models.TournamentPlayer{
		TournamentID: tournament.ID,
		UserID:       creatorID,
		DisplayName:  displayName,
		IsAdmin:      true,
	}); err != nil {
		logger.CtxWithError(ctx, "tournament create: failed to register creator", err,
			"tournament_id", tournament.ID)
	}

	return tournament, nil
}

func (s *tournamentService) Join(ctx context.Context, userID string, req *dto.JoinTournamentRequest) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.FindByCode(req.Code)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, apperrors.NewNotFoundError("tournament", "tournament not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, tournament.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid tournament password")
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = userID
		if user, err := s.userRepo.FindByID(userID); err == nil {
			displayName = user.DisplayName
		}
	}

	err = s.tournamentRepo.AddPlayer(&models.TournamentPlayer{
		TournamentID: tournament.ID,
		UserID:       userID,
		DisplayName:  displayName,
		Handicap:     req.Handicap,
	})
	if err != nil && !apperrors.Is(err, repositories.ErrAlreadyJoined) {
		return nil, apperrors.InternalError(err)
	}
	// Rejoining with the right password is a no-op, not an error.

	s.hub.Publish("tournament_players", "tournament_id="+tournament.ID, "insert")
	return tournament, nil
}

func (s *tournamentService) UpdateBlur(ctx context.Context, userID string, req *dto.UpdateBlurRequest) error {
	if err := s.requireAdmin(req.TournamentID, userID); err != nil {
		return err
	}
	if err := s.tournamentRepo.UpdateBlurTop5(req.TournamentID, req.BlurTop5); err != nil {
		return apperrors.InternalError(err)
	}
	s.hub.Publish("tournaments", "id="+req.TournamentID, "update")
	return nil
}

func (s *tournamentService) Get(tournamentID string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.FindByID(tournamentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, apperrors.NewNotFoundError("tournament", "tournament not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return tournament, nil
}

func (s *tournamentService) Players(tournamentID string) ([]models.TournamentPlayer, error) {
	players, err := s.tournamentRepo.FindPlayers(tournamentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return players, nil
}

func (s *tournamentService) Invite(ctx context.Context, userID, tournamentID string, req *dto.InviteRequest) error {
	tournament, err := s.tournamentRepo.FindByID(tournamentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTournamentNotFound) {
			return apperrors.NewNotFoundError("tournament", "tournament not found")
		}
		return apperrors.InternalError(err)
	}

	if _, err := s.tournamentRepo.FindPlayer(tournamentID, userID); err != nil {
		return apperrors.NewForbiddenError("only players can send invites")
	}

	if err := s.emailSender.SendTournamentInvite(req.Email, tournament.Name, tournament.Code); err != nil {
		logger.CtxWithError(ctx, "tournament invite: send failed", err,
			"tournament_id", tournamentID)
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *tournamentService) requireAdmin(tournamentID, userID string) error {
	player, err := s.tournamentRepo.FindPlayer(tournamentID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlayerNotFound) {
			return apperrors.NewForbiddenError("not a tournament player")
		}
		return apperrors.InternalError(err)
	}
	if !player.IsAdmin {
		return apperrors.NewForbiddenError("admin access required")
	}
	return nil
}
