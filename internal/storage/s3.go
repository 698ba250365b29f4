package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dhruvrajput1/letmecook2.0/internal/config"
)

// MediaStore holds video, thumbnail, avatar and cover assets in an
// S3-compatible bucket. Uploads and deletes are single remote calls with no
// retry; callers surface failures to the user.
type MediaStore struct {
	uploader *manager.Uploader
	client   *s3.Client
	bucket   string
	baseURL  string
}

func NewMediaStore(ctx context.Context, cfg *config.Config) (*MediaStore, error) {
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return nil, fmt.Errorf("media store: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}

	if strings.TrimSpace(cfg.S3Endpoint) != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           cfg.S3Endpoint,
					SigningRegion: cfg.S3Region,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &MediaStore{
		uploader: uploader,
		client:   client,
		bucket:   cfg.S3Bucket,
		baseURL:  strings.TrimSuffix(cfg.S3PublicBaseURL, "/"),
	}, nil
}

// Upload stores the asset under key and returns its public URL. The key
// doubles as the asset's public id for later deletion.
func (m *MediaStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", fmt.Errorf("media store: empty key")
	}

	_, err := m.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        manager.ReadSeekCloser(body),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("media store upload %s: %w", key, err)
	}

	if m.baseURL == "" {
		return key, nil
	}
	return fmt.Sprintf("%s/%s", m.baseURL, key), nil
}

// Delete removes the asset behind a previously returned key.
func (m *MediaStore) Delete(ctx context.Context, key string) error {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return fmt.Errorf("media store: empty key")
	}

	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("media store delete %s: %w", key, err)
	}
	return nil
}
