package infrastructure

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"library-service/internal/apperrors"
	"library-service/internal/config"
)

// ObjectStore is what the attachment service needs from remote storage.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// S3Service stores resource attachments in an S3 bucket. Every call runs with
// a bounded timeout and S3 failures surface as ServiceUnavailable, never as
// raw transport errors.
type S3Service struct {
	client  *s3.Client
	bucket  string
	region  string
	timeout time.Duration
}

func NewS3Service(cfg *config.Config) (*S3Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &S3Service{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.S3Bucket,
		region:  cfg.AWSRegion,
		timeout: cfg.S3Timeout,
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *S3Service) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", apperrors.ServiceUnavailable(
			"Sorry, the S3 bucket service is not available at the moment, please try a bit later").WithCause(err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *S3Service) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.ServiceUnavailable(
			"Sorry, the S3 bucket service is not available at the moment, please try a bit later").WithCause(err)
	}
	return nil
}
