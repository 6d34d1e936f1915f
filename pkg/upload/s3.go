package upload

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// putTimeout bounds a single object upload
const putTimeout = 30 * time.Second

// Config holds the S3 target for publishing renders
type Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// ConfigFromEnv reads S3 connection settings from the environment,
// leaving the bucket to the caller
func ConfigFromEnv(bucket string) Config {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}
	return Config{
		Bucket:    bucket,
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    region,
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
	}
}

// Uploader publishes rendered images to an S3 bucket
type Uploader struct {
	client *s3.S3
	bucket string
}

// NewUploader creates an S3 uploader for the configured bucket
func NewUploader(cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("upload: bucket is required")
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("upload: create session: %w", err)
	}

	return &Uploader{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// Put uploads data under key with the given content type
func (u *Uploader) Put(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, putTimeout)
	defer cancel()

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload: put %s: %w", key, err)
	}
	return nil
}
