package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"

	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/internal/storage"
	"fairway_backend/pkg/apperrors"
)

const (
	UploadUsageAvatar    = "avatar"
	UploadUsagePostImage = "post_image"
	UploadUsageGeneric   = "generic"
)

// UploadInput describes one incoming file.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Usage       string
	Reader      io.Reader
}

type UploadService interface {
	// Upload validates the file, stores it under a random name and records
	// it. An avatar upload also updates the user's profile.
	Upload(ctx context.Context, userID string, input UploadInput) (*dto.UploadResponse, error)
	// Open resolves a file by its storage path, the suffix of the URL
	// Upload hands out for locally stored files.
	Open(ctx context.Context, storagePath string) (io.ReadCloser, *models.Upload, error)
	Delete(ctx context.Context, userID, uploadID string) error
}

type uploadService struct {
	uploadRepo   repositories.UploadRepository
	userRepo     repositories.UserRepository
	store        storage.Storage
	maxSize      int64
	allowedTypes map[string]bool
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
	maxSize int64,
	allowedTypes []string,
) UploadService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &uploadService{
		uploadRepo:   uploadRepo,
		userRepo:     userRepo,
		store:        store,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

func (s *uploadService) Upload(ctx context.Context, userID string, input UploadInput) (*dto.UploadResponse, error) {
	if input.Size > s.maxSize {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}
	if !s.allowedTypes[input.ContentType] {
		return nil, apperrors.NewBadRequestError("unsupported file type: " + input.ContentType)
	}

	usage := input.Usage
	switch usage {
	case UploadUsageAvatar, UploadUsagePostImage, UploadUsageGeneric:
	case "":
		usage = UploadUsageGeneric
	default:
		return nil, apperrors.NewBadRequestError("unknown upload usage: " + usage)
	}

	name, err := randomFileName(input.FileName)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	storagePath := path.Join(usage, name)

	if err := s.store.Save(ctx, storagePath, input.Reader, input.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, storagePath)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:      userID,
		FileName:    input.FileName,
		StoragePath: storagePath,
		ContentType: input.ContentType,
		Size:        input.Size,
		Usage:       usage,
		URL:         url,
	}
	if err := s.uploadRepo.Create(upload); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if usage == UploadUsageAvatar {
		if err := s.userRepo.UpdateAvatar(userID, url); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return &dto.UploadResponse{Success: true, URL: url, ID: upload.ID}, nil
}

func (s *uploadService) Open(ctx context.Context, storagePath string) (io.ReadCloser, *models.Upload, error) {
	upload, err := s.uploadRepo.FindByStoragePath(storagePath)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUploadNotFound) {
			return nil, nil, apperrors.NewNotFoundError("upload", "file not found")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	reader, err := s.store.Get(ctx, upload.StoragePath)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return reader, upload, nil
}

func (s *uploadService) Delete(ctx context.Context, userID, uploadID string) error {
	upload, err := s.uploadRepo.FindByID(uploadID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUploadNotFound) {
			return apperrors.NewNotFoundError("upload", "file not found")
		}
		return apperrors.InternalError(err)
	}
	if upload.UserID != userID {
		return apperrors.NewForbiddenError("cannot delete another user's file")
	}

	if err := s.store.Delete(ctx, upload.StoragePath); err != nil {
		return apperrors.InternalError(err)
	}
	return s.uploadRepo.Delete(uploadID)
}

func randomFileName(original string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + path.Ext(original), nil
}
