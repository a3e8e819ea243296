package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"plateful/pkg/logger"
)

// ImageStore persists image blobs and returns a retrievable URL.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// S3ImageStore stores images in an S3 bucket under random keys.
type S3ImageStore struct {
	client *s3.Client
	bucket string
}

func NewS3ImageStore(ctx context.Context, bucket, region string) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3ImageStore{client: s3.NewFromConfig(awsCfg), bucket: bucket}, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	ext := "bin"
	if idx := strings.Index(contentType, "/"); idx >= 0 {
		ext = contentType[idx+1:]
	}
	key := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	logger.L().Debug("uploaded image", zap.String("key", key))
	return url, nil
}

// DecodeBase64Image parses a "data:image/png;base64,...." payload. A bare
// base64 string without the data-URI prefix is accepted as PNG.
func DecodeBase64Image(payload string) ([]byte, string, error) {
	contentType := "image/png"
	encoded := payload
	if strings.HasPrefix(payload, "data:") {
		semi := strings.Index(payload, ";base64,")
		if semi < 0 {
			return nil, "", fmt.Errorf("malformed data uri")
		}
		contentType = payload[len("data:"):semi]
		encoded = payload[semi+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image")
	}
	return data, contentType, nil
}
