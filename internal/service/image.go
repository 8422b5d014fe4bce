package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/errs"
)

// ImageService stores recipe images submitted as base64 data URIs and hands
// back a public URL to keep on the recipe row.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates an ImageService. s3Config may be nil (tests, local
// development), in which case image payloads are passed through untouched.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// StoreRecipeImage accepts either an already-hosted URL (returned as-is) or a
// "data:image/...;base64," payload, which it decodes and uploads.
func (s *ImageService) StoreRecipeImage(ctx context.Context, image string) (string, error) {
	if image == "" || !strings.HasPrefix(image, "data:") {
		return image, nil
	}

	meta, encoded, found := strings.Cut(image, ",")
	if !found {
		return "", errs.Validation("image", "malformed image data")
	}
	ext := "png"
	if strings.Contains(meta, "image/jpeg") || strings.Contains(meta, "image/jpg") {
		ext = "jpg"
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errs.Validation("image", "image is not valid base64")
	}

	if s.s3Config == nil {
		return image, nil
	}

	key := fmt.Sprintf("recipe-images/%s.%s", uuid.New().String(), ext)
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/" + ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}
