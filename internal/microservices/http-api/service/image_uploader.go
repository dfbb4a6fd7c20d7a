package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"perfumism/internal/apperror"
	"perfumism/internal/storage"

	"github.com/google/uuid"
)

// ImageUpload is one uploaded file as received by the handler.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// imageUploader validates images and stores them under a key prefix.
type imageUploader struct {
	storage storage.Storage
	maxSize int64
	logger  *slog.Logger
}

func newImageUploader(store storage.Storage, maxSize int64, logger *slog.Logger) *imageUploader {
	return &imageUploader{storage: store, maxSize: maxSize, logger: logger}
}

func (u *imageUploader) validate(img ImageUpload) error {
	if !strings.HasPrefix(img.ContentType, "image/") {
		return apperror.New(apperror.CodeImageInvalidType)
	}
	if u.maxSize > 0 && img.Size > u.maxSize {
		return apperror.New(apperror.CodeImageTooLarge)
	}
	return nil
}

// upload stores img under prefix/<uuid><ext>
func (u *imageUploader) upload(ctx context.Context, prefix string, img ImageUpload) (storage.ObjectInfo, error) {
	if err := u.validate(img); err != nil {
		return storage.ObjectInfo{}, err
	}
	if u.storage == nil {
		return storage.ObjectInfo{}, apperror.Wrap(apperror.CodeImageUploadFailed, fmt.Errorf("object storage is not configured"))
	}

	key := prefix + "/" + uuid.NewString() + strings.ToLower(path.Ext(img.Filename))
	info, err := u.storage.Put(ctx, key, img.Body, storage.PutObjectOptions{
		Size:        img.Size,
		ContentType: img.ContentType,
	})
	if err != nil {
		return storage.ObjectInfo{}, apperror.Wrap(apperror.CodeImageUploadFailed, err)
	}
	return info, nil
}

// discard removes objects that were stored but never recorded in the database.
func (u *imageUploader) discard(ctx context.Context, keys ...string) {
	if u.storage == nil {
		return
	}
	for _, key := range keys {
		if err := u.storage.Delete(ctx, key); err != nil {
			u.logger.Warn("failed to delete object", "key", key, "error", err)
		}
	}
}
