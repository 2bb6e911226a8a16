package services

import (
	"context"

	"fairway_backend/internal/models"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/pkg/apperrors"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID, tournamentID, body, imageURL string) (*models.Post, error)
	GetFeed(userID, tournamentID string, limit int) ([]models.Post, error)
}

type postService struct {
	postRepo       repositories.PostRepository
	tournamentRepo repositories.TournamentRepository
	hub            *realtime.Hub
}

func NewPostService(
	postRepo repositories.PostRepository,
	tournamentRepo repositories.TournamentRepository,
	hub *realtime.Hub,
) PostService {
	return &postService{postRepo: postRepo, tournamentRepo: tournamentRepo, hub: hub}
}

func (s *postService) CreatePost(ctx context.Context, authorID, tournamentID, body, imageURL string) (*models.Post, error) {
	player, err := s.tournamentRepo.FindPlayer(tournamentID, authorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, apperrors.NewForbiddenError("join the tournament to post")
		}
		return nil, apperrors.InternalError(err)
	}

	post := &models.Post{
		TournamentID: tournamentID,
		AuthorID:     authorID,
		AuthorName:   player.DisplayName,
		Kind:         models.PostKindPost,
		Body:         body,
		ImageURL:     imageURL,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.hub.Publish("posts", "tournament_id="+tournamentID, "insert")
	return post, nil
}

func (s *postService) GetFeed(userID, tournamentID string, limit int) ([]models.Post, error) {
	if _, err := s.tournamentRepo.FindPlayer(tournamentID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, apperrors.NewForbiddenError("join the tournament to read the feed")
		}
		return nil, apperrors.InternalError(err)
	}

	posts, err := s.postRepo.FindTournamentPosts(tournamentID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return posts, nil
}
