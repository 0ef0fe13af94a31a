package oss

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
)

const defaultRegion = "us-east-1" // MinIO默认区域

// Object 存储桶中的一个对象
type Object struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Storage 单个存储桶上的 put/list/delete，返回可公开访问的 URL
type Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewStorage(client *minio.Client, bucket, publicURL string) *Storage {
	return &Storage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// EnsureBucket 检查存储桶是否存在，不存在则创建
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: defaultRegion}); err != nil {
		return fmt.Errorf("create bucket error: %w", err)
	}
	hlog.Infof("Created bucket: %s", s.bucket)
	return nil
}

// Put 上传对象，size 未知时传 -1
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL 对象的公开访问地址
func (s *Storage) URL(key string) string {
	return PublicURL(s.publicURL, s.bucket, key)
}

// List 按前缀递归列出对象
func (s *Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	objects := make([]Object, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects %s: %w", prefix, obj.Err)
		}
		objects = append(objects, Object{Key: obj.Key, URL: s.URL(obj.Key), Size: obj.Size})
	}
	return objects, nil
}

// Delete 删除对象，对象不存在不算错误
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

// PublicURL 拼接 base/bucket/key，key 的每一段单独转义
func PublicURL(base, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, strings.Join(segments, "/"))
}
