package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
	"fairway_backend/pkg/apperrors"
)

type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.files[path] = data
	return nil
}

func (m *memStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(ctx context.Context, path string) error {
	delete(m.files, path)
	return nil
}

func (m *memStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/api/v1/files/" + path, nil
}

type memUploadRepo struct {
	uploads map[string]*models.Upload
	nextID  int
}

func newMemUploadRepo() *memUploadRepo {
	return &memUploadRepo{uploads: map[string]*models.Upload{}}
}

func (m *memUploadRepo) Create(upload *models.Upload) error {
	m.nextID++
	upload.ID = "upload-" + string(rune('0'+m.nextID))
	copied := *upload
	m.uploads[upload.ID] = &copied
	return nil
}

func (m *memUploadRepo) FindByID(id string) (*models.Upload, error) {
	if u, ok := m.uploads[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUploadNotFound
}

func (m *memUploadRepo) FindByStoragePath(storagePath string) (*models.Upload, error) {
	for _, u := range m.uploads {
		if u.StoragePath == storagePath {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUploadNotFound
}

func (m *memUploadRepo) Delete(id string) error {
	delete(m.uploads, id)
	return nil
}

type avatarTrackingUserRepo struct {
	fakeUserRepo
	avatars map[string]string
}

func (a *avatarTrackingUserRepo) UpdateAvatar(userID, avatarURL string) error {
	a.avatars[userID] = avatarURL
	return nil
}

func newUploadServiceForTest() (UploadService, *memStorage, *avatarTrackingUserRepo) {
	store := newMemStorage()
	users := &avatarTrackingUserRepo{avatars: map[string]string{}}
	svc := NewUploadService(newMemUploadRepo(), users, store, 1024, []string{"image/png", "image/jpeg"})
	return svc, store, users
}

func pngInput(name string, size int, usage string) UploadInput {
	return UploadInput{
		FileName:    name,
		ContentType: "image/png",
		Size:        int64(size),
		Usage:       usage,
		Reader:      strings.NewReader(strings.Repeat("a", size)),
	}
}

func TestUpload_StoresUnderRandomName(t *testing.T) {
	svc, store, _ := newUploadServiceForTest()

	resp, err := svc.Upload(context.Background(), "carol", pngInput("photo.png", 100, ""))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotContains(t, resp.URL, "photo")
	assert.Contains(t, resp.URL, ".png")
	assert.Len(t, store.files, 1)
}

func TestUpload_SizeLimitEnforced(t *testing.T) {
	svc, _, _ := newUploadServiceForTest()

	_, err := svc.Upload(context.Background(), "carol", pngInput("big.png", 2048, ""))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUpload_ContentTypeEnforced(t *testing.T) {
	svc, _, _ := newUploadServiceForTest()

	input := pngInput("doc.pdf", 100, "")
	input.ContentType = "application/pdf"
	_, err := svc.Upload(context.Background(), "carol", input)
	require.Error(t, err)
}

func TestUpload_AvatarUpdatesProfile(t *testing.T) {
	svc, _, users := newUploadServiceForTest()

	resp, err := svc.Upload(context.Background(), "carol", pngInput("face.png", 100, UploadUsageAvatar))
	require.NoError(t, err)
	assert.Equal(t, resp.URL, users.avatars["carol"])
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, store, _ := newUploadServiceForTest()

	resp, err := svc.Upload(context.Background(), "carol", pngInput("photo.png", 100, ""))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "bob", resp.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	require.NoError(t, svc.Delete(context.Background(), "carol", resp.ID))
	assert.Empty(t, store.files)
}
