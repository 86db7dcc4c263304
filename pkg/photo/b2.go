package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kurin/blazer/b2"
)

// B2Store Backblaze B2 存储
type B2Store struct {
	client *b2.Client
	bucket *b2.Bucket
	prefix string
}

// NewB2Store 连接 B2 并获取 bucket
func NewB2Store(ctx context.Context, accountID, appKey, bucketName, prefix string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("创建 B2 客户端失败: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("获取 B2 bucket 失败: %w", err)
	}

	return &B2Store{client: client, bucket: bucket, prefix: strings.TrimLeft(prefix, "/")}, nil
}

func (s *B2Store) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := s.prefix + name
	obj := s.bucket.Object(key)

	w := obj.NewWriter(ctx, b2.WithAttrsOption(&b2.Attrs{ContentType: contentType}))
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("上传照片失败: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("上传照片失败: %w", err)
	}

	return obj.URL(), nil
}
