package service

import (
	"context"
	"io"
	"strings"
	"time"
	"unicode"

	"giggles.com/cmd/model"
	"giggles.com/pkg/constants"
	"giggles.com/pkg/errno"
	"giggles.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ImageStore interface {
	InsertImage(ctx context.Context, image *model.Image) error
	GetUserImage(ctx context.Context, imageID, userID string) (*model.Image, error)
	DeleteImage(ctx context.Context, imageID string) error
	ListImages(ctx context.Context, userID string, before *time.Time, limit int) ([]*model.Image, error)
	SearchImages(ctx context.Context, userID string, tokens []string, limit int) ([]*model.Image, error)
}

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type UploadImageRequest struct {
	UserID      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ImageService struct {
	images ImageStore
	blobs  BlobStore
}

func NewImageService(images ImageStore, blobs BlobStore) *ImageService {
	return &ImageService{images: images, blobs: blobs}
}

func (s *ImageService) UploadImage(ctx context.Context, req *UploadImageRequest) (*model.Image, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || req.Body == nil {
		return nil, errno.ValidationErr.WithMessage("user_id and file are required")
	}

	id := uuid.NewString()
	key := utils.ObjectKey(constants.ImageKeyPrefix, userID, id, req.Filename)
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.blobs.Put(ctx, key, req.Body, req.Size, contentType)
	if err != nil {
		hlog.CtxErrorf(ctx, "put image blob %s failed: %v", key, err)
		return nil, errno.DependencyErr.WithMessage("failed to store image")
	}

	image := &model.Image{
		ID:          id,
		UserID:      userID,
		StoragePath: key,
		URL:         url,
		MimeType:    contentType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.images.InsertImage(ctx, image); err != nil {
		hlog.CtxErrorf(ctx, "insert image %s failed: %v", id, err)
		if derr := s.blobs.Delete(ctx, key); derr != nil {
			hlog.CtxWarnf(ctx, "remove orphan blob %s failed: %v", key, derr)
		}
		return nil, errno.DependencyErr.WithMessage("failed to save image")
	}
	return image, nil
}

func (s *ImageService) ListImages(ctx context.Context, userID string, limit int, cursor string) ([]*model.Image, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errno.ValidationErr.WithMessage("user_id is required")
	}
	before, err := utils.ParseCursor(cursor)
	if err != nil {
		return nil, errno.ValidationErr.WithMessage("cursor must be an RFC 3339 timestamp")
	}
	images, err := s.images.ListImages(ctx, userID, before, utils.NormalizeLimit(limit, constants.DefaultImagesLimit, utils.MaxLimit))
	if err != nil {
		hlog.CtxErrorf(ctx, "list images of %s failed: %v", userID, err)
		return nil, errno.DependencyErr.WithMessage("failed to list images")
	}
	return images, nil
}

// SearchImages 没有可用的关键词时直接返回空列表，不查库
func (s *ImageService) SearchImages(ctx context.Context, userID, query string, limit int) ([]*model.Image, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errno.ValidationErr.WithMessage("user_id is required")
	}
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return make([]*model.Image, 0), nil
	}
	images, err := s.images.SearchImages(ctx, userID, tokens, utils.NormalizeLimit(limit, constants.DefaultImagesLimit, utils.MaxLimit))
	if err != nil {
		hlog.CtxErrorf(ctx, "search images of %s (%q) failed: %v", userID, query, err)
		return nil, errno.DependencyErr.WithMessage("failed to search images")
	}
	return images, nil
}

// DeleteImage 先删对象再删记录，对象删除失败时保留记录
func (s *ImageService) DeleteImage(ctx context.Context, imageID, userID string) error {
	imageID, userID = strings.TrimSpace(imageID), strings.TrimSpace(userID)
	if imageID == "" || userID == "" {
		return errno.NotFoundErr.WithMessage("image not found")
	}
	image, err := s.images.GetUserImage(ctx, imageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.NotFoundErr.WithMessage("image not found")
		}
		hlog.CtxErrorf(ctx, "get image %s failed: %v", imageID, err)
		return errno.DependencyErr.WithMessage("failed to load image")
	}

	if err := s.blobs.Delete(ctx, image.StoragePath); err != nil {
		hlog.CtxErrorf(ctx, "delete image blob %s failed: %v", image.StoragePath, err)
		return errno.DependencyErr.WithMessage("failed to delete image file")
	}
	if err := s.images.DeleteImage(ctx, imageID); err != nil {
		hlog.CtxErrorf(ctx, "delete image row %s failed: %v", imageID, err)
		return errno.DependencyErr.WithMessage("failed to delete image")
	}
	return nil
}

// Tokenize 按非字母数字字符切分并转小写
func Tokenize(query string) []string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}
